package funding

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/identity"
	"github.com/bizsuite/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories funding
// source workflows touch. Opening-balance propagation into the business
// aggregate must commit together with the funding source mutation.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the funding repositories
// within a transaction.
type TransactionalRepositories interface {
	// FundingSourceRepo returns the funding source repository scoped to the current transaction
	FundingSourceRepo() funding.FundingSourceRepository
	// BusinessRepo returns the business repository scoped to the current transaction
	BusinessRepo() identity.BusinessRepository
	// ExpenditureRepo returns the expenditure repository scoped to the current transaction
	ExpenditureRepo() ledger.ExpenditureRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with mock repositories.
type NoOpTransactionScope struct {
	fundingSourceRepo funding.FundingSourceRepository
	businessRepo      identity.BusinessRepository
	expenditureRepo   ledger.ExpenditureRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	fundingSourceRepo funding.FundingSourceRepository,
	businessRepo identity.BusinessRepository,
	expenditureRepo ledger.ExpenditureRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		fundingSourceRepo: fundingSourceRepo,
		businessRepo:      businessRepo,
		expenditureRepo:   expenditureRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// FundingSourceRepo returns the funding source repository.
func (s *NoOpTransactionScope) FundingSourceRepo() funding.FundingSourceRepository {
	return s.fundingSourceRepo
}

// BusinessRepo returns the business repository.
func (s *NoOpTransactionScope) BusinessRepo() identity.BusinessRepository {
	return s.businessRepo
}

// ExpenditureRepo returns the expenditure repository.
func (s *NoOpTransactionScope) ExpenditureRepo() ledger.ExpenditureRepository {
	return s.expenditureRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
