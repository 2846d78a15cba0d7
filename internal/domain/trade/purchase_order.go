package trade

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusOrdered,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrderItem is a single line of a purchase order
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// PurchaseOrder represents an order of goods from a supplier
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	SupplierID  uuid.UUID           `json:"supplier_id"`
	Items       []PurchaseOrderItem `json:"items"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Status      PurchaseOrderStatus `json:"status"`
	OrderedAt   *time.Time          `json:"ordered_at"`
	ReceivedAt  *time.Time          `json:"received_at"`
	Notes       string              `json:"notes"`
}

// PurchaseOrderLine is the input shape for one purchase order item
type PurchaseOrderLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  decimal.Decimal
}

// NewPurchaseOrder creates a draft purchase order from its lines
func NewPurchaseOrder(tenantID, supplierID uuid.UUID, lines []PurchaseOrderLine, notes string) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "A purchase order requires at least one item")
	}

	po := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		Status:              PurchaseOrderStatusDraft,
		Notes:               notes,
		TotalAmount:         decimal.Zero,
	}

	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Order item product ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Order item quantity must be positive")
		}
		if line.UnitCost.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Order item cost cannot be negative")
		}
		lineTotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		po.Items = append(po.Items, PurchaseOrderItem{
			BaseEntity:      shared.NewBaseEntity(),
			PurchaseOrderID: po.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitCost:        line.UnitCost,
			LineTotal:       lineTotal,
		})
		po.TotalAmount = po.TotalAmount.Add(lineTotal)
	}

	return po, nil
}

// MarkOrdered transitions a draft order to ordered
func (po *PurchaseOrder) MarkOrdered() error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be placed")
	}
	now := time.Now()
	po.Status = PurchaseOrderStatusOrdered
	po.OrderedAt = &now
	po.Touch()
	return nil
}

// MarkReceived transitions an ordered order to received. The caller is
// responsible for feeding received quantities into product stock.
func (po *PurchaseOrder) MarkReceived() error {
	if po.Status != PurchaseOrderStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", "Only ordered orders can be received")
	}
	now := time.Now()
	po.Status = PurchaseOrderStatusReceived
	po.ReceivedAt = &now
	po.Touch()
	return nil
}

// Cancel abandons a draft or ordered purchase order
func (po *PurchaseOrder) Cancel() error {
	if po.Status != PurchaseOrderStatusDraft && po.Status != PurchaseOrderStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", "Only draft or ordered orders can be cancelled")
	}
	po.Status = PurchaseOrderStatusCancelled
	po.Touch()
	return nil
}
