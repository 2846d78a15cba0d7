package trade

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the trade repositories.
// A sale, its stock decrements and its mirrored ledger transaction commit
// together; so do a purchase order receipt and its stock increments.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade repositories within
// a transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() trade.SaleRepository
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// TransactionRepo returns the ledger transaction repository scoped to the current transaction
	TransactionRepo() ledger.TransactionRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with mock repositories.
type NoOpTransactionScope struct {
	saleRepo          trade.SaleRepository
	purchaseOrderRepo trade.PurchaseOrderRepository
	productRepo       catalog.ProductRepository
	transactionRepo   ledger.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo trade.SaleRepository,
	purchaseOrderRepo trade.PurchaseOrderRepository,
	productRepo catalog.ProductRepository,
	transactionRepo ledger.TransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:          saleRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		productRepo:       productRepo,
		transactionRepo:   transactionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository {
	return s.saleRepo
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// TransactionRepo returns the ledger transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() ledger.TransactionRepository {
	return s.transactionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
