package ledger

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger transaction
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "EXPENSE"
	TransactionTypeSale    TransactionType = "SALE"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeSale
}

// Transaction represents a unified ledger entry. Entries of type EXPENSE are
// mirrors of an Expenditure and carry its ID as a foreign key; entries of
// type SALE mirror a POS sale. Mirror rows are created, replaced and deleted
// only by the workflows that own the mirrored record.
type Transaction struct {
	shared.TenantAggregateRoot
	Type            TransactionType `json:"type"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Notes           string          `json:"notes"`
	OccurredAt      time.Time       `json:"occurred_at"`
	FundingSourceID *uuid.UUID      `json:"funding_source_id"`
	ExpenditureID   *uuid.UUID      `json:"expenditure_id"`
	SaleID          *uuid.UUID      `json:"sale_id"`
}

// NewExpenseTransaction creates the mirror ledger entry for an expenditure
func NewExpenseTransaction(e *Expenditure) *Transaction {
	return &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(e.TenantID),
		Type:                TransactionTypeExpense,
		TotalAmount:         e.Amount,
		PaidAmount:          e.Amount,
		Notes:               "Expenditure: " + e.Description,
		OccurredAt:          e.SpentAt,
		FundingSourceID:     e.FundingSourceID,
		ExpenditureID:       &e.ID,
	}
}

// NewSaleTransaction creates the mirror ledger entry for a completed sale
func NewSaleTransaction(tenantID, saleID uuid.UUID, total, paid decimal.Decimal, notes string, occurredAt time.Time) *Transaction {
	return &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                TransactionTypeSale,
		TotalAmount:         total,
		PaidAmount:          paid,
		Notes:               notes,
		OccurredAt:          occurredAt,
		SaleID:              &saleID,
	}
}
