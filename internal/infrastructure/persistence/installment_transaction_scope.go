package persistence

import (
	"context"

	appinstallment "github.com/bizsuite/backend/internal/application/installment"
	"github.com/bizsuite/backend/internal/domain/installment"
	"gorm.io/gorm"
)

// GormInstallmentTransactionScope implements the installment TransactionScope
// using a GORM database transaction. A payment mutation and the plan recompute
// it triggers commit together.
type GormInstallmentTransactionScope struct {
	db *gorm.DB
}

// NewGormInstallmentTransactionScope creates a new GormInstallmentTransactionScope
func NewGormInstallmentTransactionScope(db *gorm.DB) *GormInstallmentTransactionScope {
	return &GormInstallmentTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormInstallmentTransactionScope) Execute(ctx context.Context, fn func(repos appinstallment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInstallmentTransactionalRepositories{tx: tx})
	})
}

type gormInstallmentTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormInstallmentTransactionalRepositories) PlanRepo() installment.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

func (r *gormInstallmentTransactionalRepositories) PaymentRepo() installment.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Ensure GormInstallmentTransactionScope implements the application interface
var _ appinstallment.TransactionScope = (*GormInstallmentTransactionScope)(nil)
var _ appinstallment.TransactionalRepositories = (*gormInstallmentTransactionalRepositories)(nil)
