package production

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BatchFilter defines filtering options for production batch list queries
type BatchFilter struct {
	shared.Filter
	Status    *BatchStatus
	ProductID *uuid.UUID
}

// BatchRepository defines persistence operations for production batches
type BatchRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Batch, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter BatchFilter) ([]Batch, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter BatchFilter) (int64, error)
	Save(ctx context.Context, batch *Batch) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
