package trade

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService provides point-of-sale operations. A sale decrements stock for
// every line and writes one mirrored SALE ledger transaction, all in one
// database transaction.
type SaleService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:  scope,
		logger: logger,
	}
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	TenantID      uuid.UUID          `json:"tenant_id"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	SoldAt        time.Time          `json:"sold_at"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleItemRequest represents one line of a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes         string            `json:"notes"`
}

// SaleListFilter defines filtering options for sale list queries
type SaleListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreateSale records a sale: stock is decremented per line and a mirrored
// SALE transaction is written to the ledger, atomically. A line with more
// quantity than stock aborts the whole sale.
func (s *SaleService) CreateSale(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	lines := make([]trade.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, trade.SaleLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	sale, err := trade.NewSale(tenantID, req.CustomerID, trade.PaymentMethod(req.PaymentMethod), lines, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range sale.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return shared.NewDomainError("NOT_FOUND", "Product not found")
			}
			if err := product.AdjustStock(-item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		mirror := ledger.NewSaleTransaction(tenantID, sale.ID, sale.TotalAmount, sale.TotalAmount,
			"Sale via "+string(sale.PaymentMethod), sale.SoldAt)
		return repos.TransactionRepo().Save(ctx, mirror)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.Int("items", len(sale.Items)))

	return toSaleResponse(sale), nil
}

// GetSaleByID gets a sale by ID
func (s *SaleService) GetSaleByID(ctx context.Context, tenantID, id uuid.UUID) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return shared.NewDomainError("NOT_FOUND", "Sale not found")
		}
		resp = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := trade.SaleFilter{
		CustomerID: filter.CustomerID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	var (
		responses []SaleResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sales, err := repos.SaleRepo().FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.SaleRepo().CountForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		responses = make([]SaleResponse, 0, len(sales))
		for i := range sales {
			responses = append(responses, *toSaleResponse(&sales[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func toSaleResponse(sale *trade.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:            sale.ID,
		TenantID:      sale.TenantID,
		CustomerID:    sale.CustomerID,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: string(sale.PaymentMethod),
		SoldAt:        sale.SoldAt,
		Notes:         sale.Notes,
		CreatedAt:     sale.CreatedAt,
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return resp
}
