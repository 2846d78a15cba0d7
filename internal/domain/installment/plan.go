package installment

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanStatus represents the lifecycle status of an installment plan
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "ACTIVE"
	PlanStatusCompleted PlanStatus = "COMPLETED"
)

// IsValid checks if the status is a valid PlanStatus
func (s PlanStatus) IsValid() bool {
	return s == PlanStatusActive || s == PlanStatusCompleted
}

// String returns the string representation of PlanStatus
func (s PlanStatus) String() string {
	return string(s)
}

// Plan represents an installment plan aggregate root: a total amount owed by
// a customer for a product, paid down over time via payments. PaidAmount is a
// cached sum of payments and Status is derived from it; both are recomputed
// from the full payment set after every payment mutation.
type Plan struct {
	shared.TenantAggregateRoot
	ProductID   uuid.UUID       `json:"product_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      PlanStatus      `json:"status"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Notes       string          `json:"notes"`
}

// NewPlan creates a new installment plan with nothing paid yet
func NewPlan(
	tenantID, productID, customerID uuid.UUID,
	totalAmount valueobject.Money,
	startDate time.Time,
	endDate *time.Time,
	notes string,
) (*Plan, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	return &Plan{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		CustomerID:          customerID,
		TotalAmount:         totalAmount.Amount(),
		PaidAmount:          decimal.Zero,
		Status:              PlanStatusActive,
		StartDate:           startDate,
		EndDate:             endDate,
		Notes:               notes,
	}, nil
}

// IsCompleted returns true once the plan has been fully paid
func (p *Plan) IsCompleted() bool {
	return p.Status == PlanStatusCompleted
}

// OutstandingAmount returns what is still owed on the plan
func (p *Plan) OutstandingAmount() decimal.Decimal {
	outstanding := p.TotalAmount.Sub(p.PaidAmount)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// Recalculate derives PaidAmount and Status from the full payment set.
// Idempotent: applying it twice without payment changes yields the same pair.
// A plan may transition COMPLETED -> ACTIVE here; corrections to historical
// payments are allowed to reopen a plan.
func (p *Plan) Recalculate(payments []Payment) {
	paid := decimal.Zero
	for _, payment := range payments {
		paid = paid.Add(payment.Amount)
	}
	p.PaidAmount = paid
	if paid.GreaterThanOrEqual(p.TotalAmount) {
		p.Status = PlanStatusCompleted
	} else {
		p.Status = PlanStatusActive
	}
	p.Touch()
}

// GuardAcceptsPayment rejects new payments once the plan is completed.
// Only AddPayment is guarded; updates and deletes of existing payments go
// through Recalculate and may reopen the plan.
func (p *Plan) GuardAcceptsPayment() error {
	if p.IsCompleted() {
		return shared.ErrPlanCompleted
	}
	return nil
}

// UpdateTerms updates the plan-level fields. Status is recomputed by the
// caller via Recalculate against the new total.
func (p *Plan) UpdateTerms(totalAmount *valueobject.Money, endDate *time.Time, notes *string) error {
	if totalAmount != nil {
		if !totalAmount.IsPositive() {
			return shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
		}
		p.TotalAmount = totalAmount.Amount()
	}
	if endDate != nil {
		p.EndDate = endDate
	}
	if notes != nil {
		p.Notes = *notes
	}
	p.Touch()
	return nil
}
