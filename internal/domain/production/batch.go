package production

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchStatus represents the lifecycle status of a production batch
type BatchStatus string

const (
	BatchStatusInProgress BatchStatus = "IN_PROGRESS"
	BatchStatusCompleted  BatchStatus = "COMPLETED"
	BatchStatusCancelled  BatchStatus = "CANCELLED"
)

// IsValid checks if the status is a valid BatchStatus
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusInProgress, BatchStatusCompleted, BatchStatusCancelled:
		return true
	}
	return false
}

// Batch represents a production run that turns materials into stock of a
// product. Completing a batch is what feeds its quantity into inventory.
type Batch struct {
	shared.TenantAggregateRoot
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	Status       BatchStatus     `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
	Notes        string          `json:"notes"`
}

// NewBatch creates a new in-progress production batch
func NewBatch(tenantID, productID uuid.UUID, quantity int, materialCost decimal.Decimal, notes string) (*Batch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if materialCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Material cost cannot be negative")
	}

	return &Batch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		Quantity:            quantity,
		MaterialCost:        materialCost,
		Status:              BatchStatusInProgress,
		StartedAt:           time.Now(),
		Notes:               notes,
	}, nil
}

// Complete marks the batch as finished
func (b *Batch) Complete() error {
	if b.Status != BatchStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Only in-progress batches can be completed")
	}
	now := time.Now()
	b.Status = BatchStatusCompleted
	b.CompletedAt = &now
	b.Touch()
	return nil
}

// Cancel abandons an in-progress batch
func (b *Batch) Cancel() error {
	if b.Status != BatchStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Only in-progress batches can be cancelled")
	}
	b.Status = BatchStatusCancelled
	b.Touch()
	return nil
}
