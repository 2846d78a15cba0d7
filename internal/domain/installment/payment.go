package installment

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment represents a single payment made against an installment plan
type Payment struct {
	shared.TenantAggregateRoot
	PlanID uuid.UUID       `json:"plan_id"`
	Amount decimal.Decimal `json:"amount"`
	PaidAt time.Time       `json:"paid_at"`
	Notes  string          `json:"notes"`
}

// NewPayment creates a new installment payment
func NewPayment(tenantID, planID uuid.UUID, amount valueobject.Money, paidAt time.Time, notes string) (*Payment, error) {
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PlanID:              planID,
		Amount:              amount.Amount(),
		PaidAt:              paidAt,
		Notes:               notes,
	}, nil
}

// Update applies a new amount and notes to the payment
func (p *Payment) Update(amount valueobject.Money, notes string) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	p.Amount = amount.Amount()
	p.Notes = notes
	p.Touch()
	return nil
}
