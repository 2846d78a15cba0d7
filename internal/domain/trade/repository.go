package trade

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleFilter defines filtering options for sale list queries
type SaleFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) ([]Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
}

// PurchaseOrderFilter defines filtering options for purchase order queries
type PurchaseOrderFilter struct {
	shared.Filter
	Status     *PurchaseOrderStatus
	SupplierID *uuid.UUID
}

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderFilter) ([]PurchaseOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderFilter) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
