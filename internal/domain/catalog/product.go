package catalog

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product with a tracked stock quantity
type Product struct {
	shared.TenantAggregateRoot
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, name, sku, description string, unitPrice, costPrice valueobject.Money) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() || costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SKU:                 sku,
		Description:         description,
		UnitPrice:           unitPrice.Amount(),
		CostPrice:           costPrice.Amount(),
	}, nil
}

// Update applies new product details
func (p *Product) Update(name, sku, description string, unitPrice, costPrice valueobject.Money) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() || costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.Name = name
	p.SKU = sku
	p.Description = description
	p.UnitPrice = unitPrice.Amount()
	p.CostPrice = costPrice.Amount()
	p.Touch()
	return nil
}

// AdjustStock shifts the stock quantity by delta. Negative results are
// rejected; stock corrections must not leave phantom negative inventory.
func (p *Product) AdjustStock(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Stock quantity cannot go negative")
	}
	p.StockQuantity = next
	p.Touch()
	return nil
}
