package trade

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseOrderService provides purchase order operations. Receiving an
// order adds every line's quantity to product stock within the same
// transaction as the status transition.
type PurchaseOrderService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(scope TransactionScope, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:  scope,
		logger: logger,
	}
}

// PurchaseOrderItemResponse represents an order line in API responses
type PurchaseOrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID          uuid.UUID                   `json:"id"`
	TenantID    uuid.UUID                   `json:"tenant_id"`
	SupplierID  uuid.UUID                   `json:"supplier_id"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Status      string                      `json:"status"`
	OrderedAt   *time.Time                  `json:"ordered_at,omitempty"`
	ReceivedAt  *time.Time                  `json:"received_at,omitempty"`
	Notes       string                      `json:"notes,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// PurchaseOrderItemRequest represents one line of a purchase order request
type PurchaseOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID                  `json:"supplier_id" binding:"required"`
	Items      []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string                     `json:"notes"`
}

// PurchaseOrderListFilter defines filtering options for purchase order queries
type PurchaseOrderListFilter struct {
	Status     string     `form:"status"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreatePurchaseOrder creates a draft purchase order
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	lines := make([]trade.PurchaseOrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, trade.PurchaseOrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	order, err := trade.NewPurchaseOrder(tenantID, req.SupplierID, lines, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.PurchaseOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order created",
		zap.String("purchase_order_id", order.ID.String()),
		zap.String("supplier_id", req.SupplierID.String()))

	return toPurchaseOrderResponse(order), nil
}

// GetPurchaseOrderByID gets a purchase order by ID
func (s *PurchaseOrderService) GetPurchaseOrderByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp *PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Purchase order not found")
		}
		resp = toPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListPurchaseOrders lists purchase orders with filtering
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := trade.PurchaseOrderFilter{
		SupplierID: filter.SupplierID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Status != "" {
		status := trade.PurchaseOrderStatus(filter.Status)
		domainFilter.Status = &status
	}

	var (
		responses []PurchaseOrderResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders, err := repos.PurchaseOrderRepo().FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.PurchaseOrderRepo().CountForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		responses = make([]PurchaseOrderResponse, 0, len(orders))
		for i := range orders {
			responses = append(responses, *toPurchaseOrderResponse(&orders[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// PlacePurchaseOrder transitions a draft order to ordered
func (s *PurchaseOrderService) PlacePurchaseOrder(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, tenantID, id, func(order *trade.PurchaseOrder) error {
		return order.MarkOrdered()
	})
}

// CancelPurchaseOrder cancels a draft or ordered purchase order
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, tenantID, id, func(order *trade.PurchaseOrder) error {
		return order.Cancel()
	})
}

func (s *PurchaseOrderService) transition(ctx context.Context, tenantID, id uuid.UUID, fn func(order *trade.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	var resp *PurchaseOrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Purchase order not found")
		}
		if err := fn(order); err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		resp = toPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order transitioned",
		zap.String("purchase_order_id", id.String()),
		zap.String("status", resp.Status))
	return resp, nil
}

// ReceivePurchaseOrder marks an ordered purchase order as received and adds
// every line's quantity to product stock, atomically.
func (s *PurchaseOrderService) ReceivePurchaseOrder(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp *PurchaseOrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Purchase order not found")
		}
		if err := order.MarkReceived(); err != nil {
			return err
		}

		for _, item := range order.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return shared.NewDomainError("NOT_FOUND", "Product not found")
			}
			if err := product.AdjustStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		resp = toPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order received", zap.String("purchase_order_id", id.String()))
	return resp, nil
}

// DeletePurchaseOrder removes a draft purchase order
func (s *PurchaseOrderService) DeletePurchaseOrder(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Purchase order not found")
		}
		if order.Status != trade.PurchaseOrderStatusDraft {
			return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
		}
		return repos.PurchaseOrderRepo().DeleteForTenant(ctx, tenantID, id)
	})
}

func toPurchaseOrderResponse(order *trade.PurchaseOrder) *PurchaseOrderResponse {
	resp := &PurchaseOrderResponse{
		ID:          order.ID,
		TenantID:    order.TenantID,
		SupplierID:  order.SupplierID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		OrderedAt:   order.OrderedAt,
		ReceivedAt:  order.ReceivedAt,
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	for i := range order.Items {
		item := &order.Items[i]
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			LineTotal: item.LineTotal,
		})
	}
	return resp
}
