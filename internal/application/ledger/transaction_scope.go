package ledger

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories the
// expenditure reconciliation workflow touches. All repository operations
// within one Execute call share the same database transaction and commit or
// roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the reconciliation
// repositories within a transaction.
type TransactionalRepositories interface {
	// ExpenditureRepo returns the expenditure repository scoped to the current transaction
	ExpenditureRepo() ledger.ExpenditureRepository
	// TransactionRepo returns the ledger transaction repository scoped to the current transaction
	TransactionRepo() ledger.TransactionRepository
	// FundingSourceRepo returns the funding source repository scoped to the current transaction
	FundingSourceRepo() funding.FundingSourceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with mock repositories.
type NoOpTransactionScope struct {
	expenditureRepo   ledger.ExpenditureRepository
	transactionRepo   ledger.TransactionRepository
	fundingSourceRepo funding.FundingSourceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	expenditureRepo ledger.ExpenditureRepository,
	transactionRepo ledger.TransactionRepository,
	fundingSourceRepo funding.FundingSourceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		expenditureRepo:   expenditureRepo,
		transactionRepo:   transactionRepo,
		fundingSourceRepo: fundingSourceRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ExpenditureRepo returns the expenditure repository.
func (s *NoOpTransactionScope) ExpenditureRepo() ledger.ExpenditureRepository {
	return s.expenditureRepo
}

// TransactionRepo returns the ledger transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() ledger.TransactionRepository {
	return s.transactionRepo
}

// FundingSourceRepo returns the funding source repository.
func (s *NoOpTransactionScope) FundingSourceRepo() funding.FundingSourceRepository {
	return s.fundingSourceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
