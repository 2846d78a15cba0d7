package ledger

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService provides read access to the unified ledger. Mirror rows
// are written only by the workflows that own the mirrored record, so this
// service exposes no mutations.
type TransactionService struct {
	transactionRepo ledger.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo ledger.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// TransactionResponse represents a ledger transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Type            string          `json:"type"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Notes           string          `json:"notes,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
	FundingSourceID *uuid.UUID      `json:"funding_source_id,omitempty"`
	ExpenditureID   *uuid.UUID      `json:"expenditure_id,omitempty"`
	SaleID          *uuid.UUID      `json:"sale_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionListFilter defines filtering options for ledger queries
type TransactionListFilter struct {
	Type            string     `form:"type"`
	FundingSourceID *uuid.UUID `form:"funding_source_id"`
	FromDate        *time.Time `form:"from_date"`
	ToDate          *time.Time `form:"to_date"`
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
}

// ListTransactions lists ledger transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := ledger.TransactionFilter{
		FundingSourceID: filter.FundingSourceID,
		FromDate:        filter.FromDate,
		ToDate:          filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Type != "" {
		txType := ledger.TransactionType(filter.Type)
		domainFilter.Type = &txType
	}

	transactions, err := s.transactionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		responses = append(responses, TransactionResponse{
			ID:              t.ID,
			TenantID:        t.TenantID,
			Type:            string(t.Type),
			TotalAmount:     t.TotalAmount,
			PaidAmount:      t.PaidAmount,
			Notes:           t.Notes,
			OccurredAt:      t.OccurredAt,
			FundingSourceID: t.FundingSourceID,
			ExpenditureID:   t.ExpenditureID,
			SaleID:          t.SaleID,
			CreatedAt:       t.CreatedAt,
		})
	}
	return responses, total, nil
}
