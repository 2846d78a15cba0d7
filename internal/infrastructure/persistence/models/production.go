package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchModel is the persistence model for the production Batch aggregate.
type BatchModel struct {
	TenantAggregateModel
	ProductID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Quantity     int                    `gorm:"not null"`
	MaterialCost decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Status       production.BatchStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS';index"`
	StartedAt    time.Time              `gorm:"not null"`
	CompletedAt  *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "production_batches"
}

// ToDomain converts the persistence model to a domain Batch entity.
func (m *BatchModel) ToDomain() *production.Batch {
	batch := &production.Batch{
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		MaterialCost: m.MaterialCost,
		Status:       m.Status,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		Notes:        m.Notes,
	}
	m.PopulateTenantAggregateRoot(&batch.TenantAggregateRoot)
	return batch
}

// FromDomain populates the persistence model from a domain Batch entity.
func (m *BatchModel) FromDomain(b *production.Batch) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.ProductID = b.ProductID
	m.Quantity = b.Quantity
	m.MaterialCost = b.MaterialCost
	m.Status = b.Status
	m.StartedAt = b.StartedAt
	m.CompletedAt = b.CompletedAt
	m.Notes = b.Notes
}

// BatchModelFromDomain creates a new persistence model from a domain Batch entity.
func BatchModelFromDomain(b *production.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}
