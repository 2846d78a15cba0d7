package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/installment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanModel is the persistence model for the installment Plan aggregate.
// PaidAmount and Status are caches recomputed from the payment set.
type PlanModel struct {
	TenantAggregateModel
	ProductID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	PaidAmount  decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Status      installment.PlanStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	StartDate   time.Time              `gorm:"not null"`
	EndDate     *time.Time
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "installment_plans"
}

// ToDomain converts the persistence model to a domain Plan entity.
func (m *PlanModel) ToDomain() *installment.Plan {
	plan := &installment.Plan{
		ProductID:   m.ProductID,
		CustomerID:  m.CustomerID,
		TotalAmount: m.TotalAmount,
		PaidAmount:  m.PaidAmount,
		Status:      m.Status,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&plan.TenantAggregateRoot)
	return plan
}

// FromDomain populates the persistence model from a domain Plan entity.
func (m *PlanModel) FromDomain(p *installment.Plan) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.ProductID = p.ProductID
	m.CustomerID = p.CustomerID
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.Status = p.Status
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.Notes = p.Notes
}

// PlanModelFromDomain creates a new persistence model from a domain Plan entity.
func PlanModelFromDomain(p *installment.Plan) *PlanModel {
	m := &PlanModel{}
	m.FromDomain(p)
	return m
}

// PaymentModel is the persistence model for installment payments.
type PaymentModel struct {
	TenantAggregateModel
	PlanID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAt time.Time       `gorm:"not null;index"`
	Notes  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "installment_payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *installment.Payment {
	payment := &installment.Payment{
		PlanID: m.PlanID,
		Amount: m.Amount,
		PaidAt: m.PaidAt,
		Notes:  m.Notes,
	}
	m.PopulateTenantAggregateRoot(&payment.TenantAggregateRoot)
	return payment
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *installment.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.PlanID = p.PlanID
	m.Amount = p.Amount
	m.PaidAt = p.PaidAt
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *installment.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
