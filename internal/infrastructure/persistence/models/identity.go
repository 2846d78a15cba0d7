package models

import (
	"github.com/bizsuite/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// BusinessModel is the persistence model for the Business tenant aggregate.
type BusinessModel struct {
	AggregateModel
	Name           string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(50)"`
	Address        string          `gorm:"type:text"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts the persistence model to a domain Business entity.
func (m *BusinessModel) ToDomain() *identity.Business {
	business := &identity.Business{
		Name:           m.Name,
		Phone:          m.Phone,
		Address:        m.Address,
		OpeningBalance: m.OpeningBalance,
	}
	m.PopulateAggregateRoot(&business.BaseAggregateRoot)
	return business
}

// FromDomain populates the persistence model from a domain Business entity.
func (m *BusinessModel) FromDomain(b *identity.Business) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Phone = b.Phone
	m.Address = b.Address
	m.OpeningBalance = b.OpeningBalance
}

// BusinessModelFromDomain creates a new persistence model from a domain Business entity.
func BusinessModelFromDomain(b *identity.Business) *BusinessModel {
	m := &BusinessModel{}
	m.FromDomain(b)
	return m
}

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	TenantAggregateModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName  string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Username:     m.Username,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Username = u.Username
	m.DisplayName = u.DisplayName
	m.PasswordHash = u.PasswordHash
	m.Active = u.Active
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
