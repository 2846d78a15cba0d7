package ledger

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenditureFilter defines filtering options for expenditure list queries
type ExpenditureFilter struct {
	shared.Filter
	Category        *ExpenditureCategory
	FundingSourceID *uuid.UUID
	FromDate        *time.Time
	ToDate          *time.Time
}

// ExpenditureRepository defines persistence operations for expenditures
type ExpenditureRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expenditure, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ExpenditureFilter) ([]Expenditure, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ExpenditureFilter) (int64, error)
	CountByFundingSource(ctx context.Context, tenantID, fundingSourceID uuid.UUID) (int64, error)
	Save(ctx context.Context, expenditure *Expenditure) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// TransactionFilter defines filtering options for ledger transaction queries
type TransactionFilter struct {
	shared.Filter
	Type            *TransactionType
	FundingSourceID *uuid.UUID
	FromDate        *time.Time
	ToDate          *time.Time
}

// TransactionRepository defines persistence operations for ledger transactions
type TransactionRepository interface {
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]Transaction, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (int64, error)
	FindByExpenditureID(ctx context.Context, tenantID, expenditureID uuid.UUID) (*Transaction, error)
	Save(ctx context.Context, transaction *Transaction) error
	DeleteByExpenditureID(ctx context.Context, tenantID, expenditureID uuid.UUID) error
}
