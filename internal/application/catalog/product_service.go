package catalog

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService provides product and stock operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductListFilter defines filtering options for product list queries
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(
		tenantID,
		req.Name,
		req.SKU,
		req.Description,
		valueobject.NewMoney(req.UnitPrice),
		valueobject.NewMoney(req.CostPrice),
	)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProductByID gets a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return toProductResponse(product), nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *toProductResponse(&products[i]))
	}
	return responses, total, nil
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if err := product.Update(req.Name, req.SKU, req.Description, valueobject.NewMoney(req.UnitPrice), valueobject.NewMoney(req.CostPrice)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return s.productRepo.DeleteForTenant(ctx, tenantID, id)
}

// AdjustStock shifts a product's stock quantity by delta
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if err := product.AdjustStock(req.Delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("product_id", id.String()),
		zap.Int("delta", req.Delta),
		zap.Int("stock_quantity", product.StockQuantity))

	return toProductResponse(product), nil
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		UnitPrice:     p.UnitPrice,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
