package installment

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/installment"
)

// TransactionScope provides transactional access to the installment
// repositories. A payment mutation and the plan recompute it triggers must
// commit together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the installment repositories
// within a transaction.
type TransactionalRepositories interface {
	// PlanRepo returns the installment plan repository scoped to the current transaction
	PlanRepo() installment.PlanRepository
	// PaymentRepo returns the installment payment repository scoped to the current transaction
	PaymentRepo() installment.PaymentRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with mock repositories.
type NoOpTransactionScope struct {
	planRepo    installment.PlanRepository
	paymentRepo installment.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(planRepo installment.PlanRepository, paymentRepo installment.PaymentRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PlanRepo returns the installment plan repository.
func (s *NoOpTransactionScope) PlanRepo() installment.PlanRepository {
	return s.planRepo
}

// PaymentRepo returns the installment payment repository.
func (s *NoOpTransactionScope) PaymentRepo() installment.PaymentRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
