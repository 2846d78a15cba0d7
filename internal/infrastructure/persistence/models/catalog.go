package models

import (
	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	SKU           string          `gorm:"type:varchar(100);index"`
	Description   string          `gorm:"type:text"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0;check:stock_quantity >= 0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		Name:          m.Name,
		SKU:           m.SKU,
		Description:   m.Description,
		UnitPrice:     m.UnitPrice,
		CostPrice:     m.CostPrice,
		StockQuantity: m.StockQuantity,
	}
	m.PopulateTenantAggregateRoot(&product.TenantAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Description = p.Description
	m.UnitPrice = p.UnitPrice
	m.CostPrice = p.CostPrice
	m.StockQuantity = p.StockQuantity
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
