package funding

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceFilter defines filtering options for funding source list queries
type SourceFilter struct {
	shared.Filter
	Type   *SourceType
	Status *SourceStatus
}

// FundingSourceRepository defines persistence operations for funding sources.
// AddToBalance and SubtractFromBalance must be implemented as atomic
// conditional updates so that two concurrent debits cannot both pass a stale
// balance check; both are expected to run inside the caller's transaction.
type FundingSourceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FundingSource, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter SourceFilter) ([]FundingSource, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter SourceFilter) (int64, error)
	Save(ctx context.Context, source *FundingSource) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// AddToBalance credits amount to the remaining balance.
	// Returns shared.ErrNotFound if the source does not exist for the tenant.
	AddToBalance(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) error

	// SubtractFromBalance debits amount from the remaining balance, guarded by
	// remaining_balance >= amount in a single statement.
	// Returns shared.ErrInsufficientBalance when the guard fails and
	// shared.ErrNotFound when the source does not exist for the tenant.
	SubtractFromBalance(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) error
}
