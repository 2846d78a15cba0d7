package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/shopspring/decimal"
)

// FundingSourceModel is the persistence model for the FundingSource aggregate.
// RemainingBalance is only ever mutated through the balance engine's
// conditional updates; a CHECK constraint backs the non-negativity invariant.
type FundingSourceModel struct {
	TenantAggregateModel
	Type             funding.SourceType   `gorm:"type:varchar(30);not null;index"`
	Name             string               `gorm:"type:varchar(200);not null"`
	Provider         string               `gorm:"type:varchar(200)"`
	Amount           decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingBalance decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0;check:remaining_balance >= 0"`
	ContractTerms    string               `gorm:"type:text"`
	Status           funding.SourceStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	StartDate        *time.Time
	EndDate          *time.Time
}

// TableName returns the table name for GORM
func (FundingSourceModel) TableName() string {
	return "funding_sources"
}

// ToDomain converts the persistence model to a domain FundingSource entity.
func (m *FundingSourceModel) ToDomain() *funding.FundingSource {
	source := &funding.FundingSource{
		Type:             m.Type,
		Name:             m.Name,
		Provider:         m.Provider,
		Amount:           m.Amount,
		RemainingBalance: m.RemainingBalance,
		ContractTerms:    m.ContractTerms,
		Status:           m.Status,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
	}
	m.PopulateTenantAggregateRoot(&source.TenantAggregateRoot)
	return source
}

// FromDomain populates the persistence model from a domain FundingSource entity.
func (m *FundingSourceModel) FromDomain(f *funding.FundingSource) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Type = f.Type
	m.Name = f.Name
	m.Provider = f.Provider
	m.Amount = f.Amount
	m.RemainingBalance = f.RemainingBalance
	m.ContractTerms = f.ContractTerms
	m.Status = f.Status
	m.StartDate = f.StartDate
	m.EndDate = f.EndDate
}

// FundingSourceModelFromDomain creates a new persistence model from a domain FundingSource entity.
func FundingSourceModelFromDomain(f *funding.FundingSource) *FundingSourceModel {
	m := &FundingSourceModel{}
	m.FromDomain(f)
	return m
}
