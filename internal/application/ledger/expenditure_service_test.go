package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockExpenditureRepository is a mock implementation of ExpenditureRepository
type MockExpenditureRepository struct {
	mock.Mock
}

func (m *MockExpenditureRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Expenditure, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Expenditure), args.Error(1)
}

func (m *MockExpenditureRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ExpenditureFilter) ([]ledger.Expenditure, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Expenditure), args.Error(1)
}

func (m *MockExpenditureRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ExpenditureFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenditureRepository) CountByFundingSource(ctx context.Context, tenantID, fundingSourceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, fundingSourceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenditureRepository) Save(ctx context.Context, expenditure *ledger.Expenditure) error {
	args := m.Called(ctx, expenditure)
	return args.Error(0)
}

func (m *MockExpenditureRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.TransactionFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindByExpenditureID(ctx context.Context, tenantID, expenditureID uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, tenantID, expenditureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, transaction *ledger.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteByExpenditureID(ctx context.Context, tenantID, expenditureID uuid.UUID) error {
	args := m.Called(ctx, tenantID, expenditureID)
	return args.Error(0)
}

// MockFundingSourceRepository is a mock implementation of FundingSourceRepository
type MockFundingSourceRepository struct {
	mock.Mock
}

func (m *MockFundingSourceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*funding.FundingSource, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*funding.FundingSource), args.Error(1)
}

func (m *MockFundingSourceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter funding.SourceFilter) ([]funding.FundingSource, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]funding.FundingSource), args.Error(1)
}

func (m *MockFundingSourceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter funding.SourceFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundingSourceRepository) Save(ctx context.Context, source *funding.FundingSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockFundingSourceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockFundingSourceRepository) AddToBalance(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, tenantID, id, amount)
	return args.Error(0)
}

func (m *MockFundingSourceRepository) SubtractFromBalance(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, tenantID, id, amount)
	return args.Error(0)
}

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestSourceID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func newExpenditureServiceForTest() (*ExpenditureService, *MockExpenditureRepository, *MockTransactionRepository, *MockFundingSourceRepository) {
	expenditureRepo := new(MockExpenditureRepository)
	transactionRepo := new(MockTransactionRepository)
	fundingSourceRepo := new(MockFundingSourceRepository)
	scope := NewNoOpTransactionScope(expenditureRepo, transactionRepo, fundingSourceRepo)
	return NewExpenditureService(scope, zap.NewNop()), expenditureRepo, transactionRepo, fundingSourceRepo
}

func createTestExpenditure(t *testing.T, tenantID uuid.UUID, amount string, sourceID *uuid.UUID) *ledger.Expenditure {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(amount)
	assert.NoError(t, err)
	expenditure, err := ledger.NewExpenditure(tenantID, money, ledger.ExpenditureCategorySupplies, "Packaging material", time.Now(), sourceID)
	assert.NoError(t, err)
	return expenditure
}

func TestExpenditureService_Create_DebitsSourceAndMirrorsTransaction(t *testing.T) {
	service, expenditureRepo, transactionRepo, fundingSourceRepo := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()
	sourceID := newTestSourceID()
	amount := decimal.NewFromInt(150)

	fundingSourceRepo.On("SubtractFromBalance", ctx, tenantID, sourceID, amount).Return(nil)
	expenditureRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Expenditure")).Return(nil)
	transactionRepo.On("Save", ctx, mock.MatchedBy(func(tx *ledger.Transaction) bool {
		return tx.Type == ledger.TransactionTypeExpense &&
			tx.TotalAmount.Equal(amount) &&
			tx.PaidAmount.Equal(amount) &&
			tx.ExpenditureID != nil &&
			tx.FundingSourceID != nil && *tx.FundingSourceID == sourceID
	})).Return(nil)

	result, err := service.CreateExpenditure(ctx, tenantID, CreateExpenditureRequest{
		Amount:          amount,
		Category:        "SUPPLIES",
		Description:     "Packaging material",
		FundingSourceID: &sourceID,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.Amount.Equal(amount))
	fundingSourceRepo.AssertExpectations(t)
	expenditureRepo.AssertExpectations(t)
	transactionRepo.AssertExpectations(t)
}

func TestExpenditureService_Create_Unattributed_NeverTouchesBalances(t *testing.T) {
	service, expenditureRepo, transactionRepo, fundingSourceRepo := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()

	expenditureRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Expenditure")).Return(nil)
	transactionRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Transaction")).Return(nil)

	result, err := service.CreateExpenditure(ctx, tenantID, CreateExpenditureRequest{
		Amount:      decimal.NewFromInt(40),
		Category:    "TRANSPORT",
		Description: "Delivery fuel",
	})

	assert.NoError(t, err)
	assert.Nil(t, result.FundingSourceID)
	fundingSourceRepo.AssertNotCalled(t, "SubtractFromBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	fundingSourceRepo.AssertNotCalled(t, "AddToBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExpenditureService_Create_InsufficientBalance_NothingPersisted(t *testing.T) {
	service, expenditureRepo, transactionRepo, fundingSourceRepo := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()
	sourceID := newTestSourceID()
	amount := decimal.NewFromInt(5000)

	fundingSourceRepo.On("SubtractFromBalance", ctx, tenantID, sourceID, amount).
		Return(shared.ErrInsufficientBalance)

	result, err := service.CreateExpenditure(ctx, tenantID, CreateExpenditureRequest{
		Amount:          amount,
		Category:        "EQUIPMENT",
		Description:     "Industrial oven",
		FundingSourceID: &sourceID,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
	expenditureRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	transactionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExpenditureService_Create_InvalidCategory(t *testing.T) {
	service, _, _, _ := newExpenditureServiceForTest()

	_, err := service.CreateExpenditure(context.Background(), newTestTenantID(), CreateExpenditureRequest{
		Amount:      decimal.NewFromInt(10),
		Category:    "GAMBLING",
		Description: "Should not pass",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestExpenditureService_Update_ReattributionConservesBalances(t *testing.T) {
	service, expenditureRepo, transactionRepo, fundingSourceRepo := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()
	oldSourceID := newTestSourceID()
	newSourceID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	existing := createTestExpenditure(t, tenantID, "100", &oldSourceID)
	oldAmount := existing.Amount
	newAmount := decimal.NewFromInt(250)

	expenditureRepo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
	// The old attribution is credited back in full, the new one debited in full
	fundingSourceRepo.On("AddToBalance", ctx, tenantID, oldSourceID, oldAmount).Return(nil)
	fundingSourceRepo.On("SubtractFromBalance", ctx, tenantID, newSourceID, newAmount).Return(nil)
	transactionRepo.On("DeleteByExpenditureID", ctx, tenantID, existing.ID).Return(nil)
	transactionRepo.On("Save", ctx, mock.MatchedBy(func(tx *ledger.Transaction) bool {
		return tx.TotalAmount.Equal(newAmount) && tx.FundingSourceID != nil && *tx.FundingSourceID == newSourceID
	})).Return(nil)
	expenditureRepo.On("Save", ctx, existing).Return(nil)

	result, err := service.UpdateExpenditure(ctx, tenantID, existing.ID, UpdateExpenditureRequest{
		Amount:          newAmount,
		Category:        "SUPPLIES",
		Description:     "Packaging material, larger batch",
		FundingSourceID: &newSourceID,
	})

	assert.NoError(t, err)
	assert.True(t, result.Amount.Equal(newAmount))
	fundingSourceRepo.AssertExpectations(t)
	transactionRepo.AssertExpectations(t)
}

func TestExpenditureService_Update_NotFound(t *testing.T) {
	service, expenditureRepo, _, _ := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()
	id := uuid.New()

	expenditureRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, nil)

	_, err := service.UpdateExpenditure(ctx, tenantID, id, UpdateExpenditureRequest{
		Amount:      decimal.NewFromInt(10),
		Category:    "OTHER",
		Description: "Missing",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestExpenditureService_Delete_CreditsBackAndRemovesMirror(t *testing.T) {
	service, expenditureRepo, transactionRepo, fundingSourceRepo := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()
	sourceID := newTestSourceID()
	existing := createTestExpenditure(t, tenantID, "75.50", &sourceID)

	expenditureRepo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
	fundingSourceRepo.On("AddToBalance", ctx, tenantID, sourceID, existing.Amount).Return(nil)
	transactionRepo.On("DeleteByExpenditureID", ctx, tenantID, existing.ID).Return(nil)
	expenditureRepo.On("DeleteForTenant", ctx, tenantID, existing.ID).Return(nil)

	err := service.DeleteExpenditure(ctx, tenantID, existing.ID)

	assert.NoError(t, err)
	expenditureRepo.AssertExpectations(t)
	transactionRepo.AssertExpectations(t)
	fundingSourceRepo.AssertExpectations(t)
}

func TestExpenditureService_Delete_CreditFailureAbortsWorkflow(t *testing.T) {
	service, expenditureRepo, transactionRepo, fundingSourceRepo := newExpenditureServiceForTest()

	ctx := context.Background()
	tenantID := newTestTenantID()
	sourceID := newTestSourceID()
	existing := createTestExpenditure(t, tenantID, "75.50", &sourceID)

	expenditureRepo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
	fundingSourceRepo.On("AddToBalance", ctx, tenantID, sourceID, existing.Amount).
		Return(shared.ErrNotFound)

	err := service.DeleteExpenditure(ctx, tenantID, existing.ID)

	assert.Error(t, err)
	transactionRepo.AssertNotCalled(t, "DeleteByExpenditureID", mock.Anything, mock.Anything, mock.Anything)
	expenditureRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
}
