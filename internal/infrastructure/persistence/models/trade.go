package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemModel is the persistence model for a single sale line.
type SaleItemModel struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// SaleModel is the persistence model for the Sale aggregate. Lines are loaded
// and saved together with the sale; sales are immutable once recorded.
type SaleModel struct {
	TenantAggregateModel
	CustomerID    *uuid.UUID          `gorm:"type:uuid;index"`
	Items         []SaleItemModel     `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PaymentMethod trade.PaymentMethod `gorm:"type:varchar(20);not null"`
	SoldAt        time.Time           `gorm:"not null;index"`
	Notes         string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *trade.Sale {
	sale := &trade.Sale{
		CustomerID:    m.CustomerID,
		TotalAmount:   m.TotalAmount,
		PaymentMethod: m.PaymentMethod,
		SoldAt:        m.SoldAt,
		Notes:         m.Notes,
	}
	m.PopulateTenantAggregateRoot(&sale.TenantAggregateRoot)
	for i := range m.Items {
		item := &m.Items[i]
		sale.Items = append(sale.Items, trade.SaleItem{
			BaseEntity: shared.BaseEntity{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			SaleID:    item.SaleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.CustomerID = s.CustomerID
	m.TotalAmount = s.TotalAmount
	m.PaymentMethod = s.PaymentMethod
	m.SoldAt = s.SoldAt
	m.Notes = s.Notes
	m.Items = make([]SaleItemModel, 0, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		itemModel := SaleItemModel{
			SaleID:    item.SaleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		itemModel.FromDomainBaseEntity(item.BaseEntity)
		m.Items = append(m.Items, itemModel)
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// PurchaseOrderItemModel is the persistence model for a purchase order line.
type PurchaseOrderItemModel struct {
	BaseModel
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        int             `gorm:"not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate.
type PurchaseOrderModel struct {
	TenantAggregateModel
	SupplierID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Items       []PurchaseOrderItemModel  `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	TotalAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Status      trade.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	OrderedAt   *time.Time
	ReceivedAt  *time.Time
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	order := &trade.PurchaseOrder{
		SupplierID:  m.SupplierID,
		TotalAmount: m.TotalAmount,
		Status:      m.Status,
		OrderedAt:   m.OrderedAt,
		ReceivedAt:  m.ReceivedAt,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&order.TenantAggregateRoot)
	for i := range m.Items {
		item := &m.Items[i]
		order.Items = append(order.Items, trade.PurchaseOrderItem{
			BaseEntity: shared.BaseEntity{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			PurchaseOrderID: item.PurchaseOrderID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitCost:        item.UnitCost,
			LineTotal:       item.LineTotal,
		})
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(po *trade.PurchaseOrder) {
	m.FromDomainTenantAggregateRoot(po.TenantAggregateRoot)
	m.SupplierID = po.SupplierID
	m.TotalAmount = po.TotalAmount
	m.Status = po.Status
	m.OrderedAt = po.OrderedAt
	m.ReceivedAt = po.ReceivedAt
	m.Notes = po.Notes
	m.Items = make([]PurchaseOrderItemModel, 0, len(po.Items))
	for i := range po.Items {
		item := &po.Items[i]
		itemModel := PurchaseOrderItemModel{
			PurchaseOrderID: item.PurchaseOrderID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitCost:        item.UnitCost,
			LineTotal:       item.LineTotal,
		}
		itemModel.FromDomainBaseEntity(item.BaseEntity)
		m.Items = append(m.Items, itemModel)
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(po *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(po)
	return m
}
