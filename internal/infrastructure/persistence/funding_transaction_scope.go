package persistence

import (
	"context"

	appfunding "github.com/bizsuite/backend/internal/application/funding"
	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/identity"
	"github.com/bizsuite/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormFundingTransactionScope implements the funding TransactionScope using a
// GORM database transaction. Opening-balance propagation commits together with
// the funding source mutation.
type GormFundingTransactionScope struct {
	db *gorm.DB
}

// NewGormFundingTransactionScope creates a new GormFundingTransactionScope
func NewGormFundingTransactionScope(db *gorm.DB) *GormFundingTransactionScope {
	return &GormFundingTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormFundingTransactionScope) Execute(ctx context.Context, fn func(repos appfunding.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormFundingTransactionalRepositories{tx: tx})
	})
}

type gormFundingTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormFundingTransactionalRepositories) FundingSourceRepo() funding.FundingSourceRepository {
	return NewGormFundingSourceRepository(r.tx)
}

func (r *gormFundingTransactionalRepositories) BusinessRepo() identity.BusinessRepository {
	return NewGormBusinessRepository(r.tx)
}

func (r *gormFundingTransactionalRepositories) ExpenditureRepo() ledger.ExpenditureRepository {
	return NewGormExpenditureRepository(r.tx)
}

// Ensure GormFundingTransactionScope implements the application interface
var _ appfunding.TransactionScope = (*GormFundingTransactionScope)(nil)
var _ appfunding.TransactionalRepositories = (*gormFundingTransactionalRepositories)(nil)
