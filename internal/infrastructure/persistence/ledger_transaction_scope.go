package persistence

import (
	"context"

	appledger "github.com/bizsuite/backend/internal/application/ledger"
	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormLedgerTransactionScope implements the ledger TransactionScope using a
// GORM database transaction. All repositories handed to the callback share the
// same transaction handle.
type GormLedgerTransactionScope struct {
	db *gorm.DB
}

// NewGormLedgerTransactionScope creates a new GormLedgerTransactionScope
func NewGormLedgerTransactionScope(db *gorm.DB) *GormLedgerTransactionScope {
	return &GormLedgerTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormLedgerTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerTransactionalRepositories{tx: tx})
	})
}

type gormLedgerTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormLedgerTransactionalRepositories) ExpenditureRepo() ledger.ExpenditureRepository {
	return NewGormExpenditureRepository(r.tx)
}

func (r *gormLedgerTransactionalRepositories) TransactionRepo() ledger.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

func (r *gormLedgerTransactionalRepositories) FundingSourceRepo() funding.FundingSourceRepository {
	return NewGormFundingSourceRepository(r.tx)
}

// Ensure GormLedgerTransactionScope implements the application interface
var _ appledger.TransactionScope = (*GormLedgerTransactionScope)(nil)
var _ appledger.TransactionalRepositories = (*gormLedgerTransactionalRepositories)(nil)
