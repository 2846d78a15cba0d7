package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenditureModel is the persistence model for the Expenditure aggregate.
type ExpenditureModel struct {
	TenantAggregateModel
	Amount          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Category        ledger.ExpenditureCategory `gorm:"type:varchar(30);not null;index"`
	Description     string                     `gorm:"type:varchar(500);not null"`
	SpentAt         time.Time                  `gorm:"not null;index"`
	FundingSourceID *uuid.UUID                 `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ExpenditureModel) TableName() string {
	return "expenditures"
}

// ToDomain converts the persistence model to a domain Expenditure entity.
func (m *ExpenditureModel) ToDomain() *ledger.Expenditure {
	expenditure := &ledger.Expenditure{
		Amount:          m.Amount,
		Category:        m.Category,
		Description:     m.Description,
		SpentAt:         m.SpentAt,
		FundingSourceID: m.FundingSourceID,
	}
	m.PopulateTenantAggregateRoot(&expenditure.TenantAggregateRoot)
	return expenditure
}

// FromDomain populates the persistence model from a domain Expenditure entity.
func (m *ExpenditureModel) FromDomain(e *ledger.Expenditure) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.Amount = e.Amount
	m.Category = e.Category
	m.Description = e.Description
	m.SpentAt = e.SpentAt
	m.FundingSourceID = e.FundingSourceID
}

// ExpenditureModelFromDomain creates a new persistence model from a domain Expenditure entity.
func ExpenditureModelFromDomain(e *ledger.Expenditure) *ExpenditureModel {
	m := &ExpenditureModel{}
	m.FromDomain(e)
	return m
}

// TransactionModel is the persistence model for unified ledger transactions.
// EXPENSE rows carry the mirrored expenditure's ID, SALE rows the sale's.
type TransactionModel struct {
	TenantAggregateModel
	Type            ledger.TransactionType `gorm:"type:varchar(20);not null;index"`
	TotalAmount     decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Notes           string                 `gorm:"type:text"`
	OccurredAt      time.Time              `gorm:"not null;index"`
	FundingSourceID *uuid.UUID             `gorm:"type:uuid;index"`
	ExpenditureID   *uuid.UUID             `gorm:"type:uuid;index"`
	SaleID          *uuid.UUID             `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	transaction := &ledger.Transaction{
		Type:            m.Type,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		Notes:           m.Notes,
		OccurredAt:      m.OccurredAt,
		FundingSourceID: m.FundingSourceID,
		ExpenditureID:   m.ExpenditureID,
		SaleID:          m.SaleID,
	}
	m.PopulateTenantAggregateRoot(&transaction.TenantAggregateRoot)
	return transaction
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.Type = t.Type
	m.TotalAmount = t.TotalAmount
	m.PaidAmount = t.PaidAmount
	m.Notes = t.Notes
	m.OccurredAt = t.OccurredAt
	m.FundingSourceID = t.FundingSourceID
	m.ExpenditureID = t.ExpenditureID
	m.SaleID = t.SaleID
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction entity.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
