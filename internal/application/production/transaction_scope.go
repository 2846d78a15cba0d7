package production

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/production"
)

// TransactionScope provides transactional access to the production
// repositories. Completing a batch writes the batch and the product stock
// update together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the production repositories
// within a transaction.
type TransactionalRepositories interface {
	// BatchRepo returns the production batch repository scoped to the current transaction
	BatchRepo() production.BatchRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with mock repositories.
type NoOpTransactionScope struct {
	batchRepo   production.BatchRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(batchRepo production.BatchRepository, productRepo catalog.ProductRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		batchRepo:   batchRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the production batch repository.
func (s *NoOpTransactionScope) BatchRepo() production.BatchRepository {
	return s.batchRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
