package persistence

import (
	"context"

	appproduction "github.com/bizsuite/backend/internal/application/production"
	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/production"
	"gorm.io/gorm"
)

// GormProductionTransactionScope implements the production TransactionScope
// using a GORM database transaction. Batch completion and the stock increment
// it feeds commit together.
type GormProductionTransactionScope struct {
	db *gorm.DB
}

// NewGormProductionTransactionScope creates a new GormProductionTransactionScope
func NewGormProductionTransactionScope(db *gorm.DB) *GormProductionTransactionScope {
	return &GormProductionTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormProductionTransactionScope) Execute(ctx context.Context, fn func(repos appproduction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductionTransactionalRepositories{tx: tx})
	})
}

type gormProductionTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormProductionTransactionalRepositories) BatchRepo() production.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormProductionTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Ensure GormProductionTransactionScope implements the application interface
var _ appproduction.TransactionScope = (*GormProductionTransactionScope)(nil)
var _ appproduction.TransactionalRepositories = (*gormProductionTransactionalRepositories)(nil)
