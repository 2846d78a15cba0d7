package funding

import (
	"context"
	"testing"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/identity"
	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

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

// MockBusinessRepository is a mock implementation of BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

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

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newFundingSourceServiceForTest(
	sourceRepo *MockFundingSourceRepository,
	businessRepo *MockBusinessRepository,
	expenditureRepo *MockExpenditureRepository,
) *FundingSourceService {
	scope := NewNoOpTransactionScope(sourceRepo, businessRepo, expenditureRepo)
	return NewFundingSourceService(scope, zap.NewNop())
}

func createTestSource(t *testing.T, tenantID uuid.UUID, sourceType funding.SourceType, amount string) *funding.FundingSource {
	t.Helper()
	source, err := funding.NewFundingSource(
		tenantID,
		sourceType,
		"Test source",
		"Test provider",
		valueobject.NewMoney(decimal.RequireFromString(amount)),
	)
	assert.NoError(t, err)
	return source
}

func createTestBusiness(t *testing.T, tenantID uuid.UUID, openingBalance string) *identity.Business {
	t.Helper()
	business, err := identity.NewBusiness("Test business", "555-0100", "1 Main St")
	assert.NoError(t, err)
	business.ID = tenantID
	business.OpeningBalance = decimal.RequireFromString(openingBalance)
	return business
}

func TestFundingSourceService_Create_OpeningBalanceAdjustsBusiness(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	business := createTestBusiness(t, tenantID, "100.00")

	sourceRepo.On("Save", mock.Anything, mock.AnythingOfType("*funding.FundingSource")).Return(nil)
	businessRepo.On("FindByID", mock.Anything, tenantID).Return(business, nil)
	businessRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *identity.Business) bool {
		return b.OpeningBalance.Equal(decimal.RequireFromString("350.00"))
	})).Return(nil)

	resp, err := service.CreateFundingSource(context.Background(), tenantID, CreateFundingSourceRequest{
		Type:   "OPENING_BALANCE",
		Name:   "Initial capital",
		Amount: decimal.RequireFromString("250.00"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.True(t, resp.RemainingBalance.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, resp.SpentAmount.IsZero())
	sourceRepo.AssertExpectations(t)
	businessRepo.AssertExpectations(t)
}

func TestFundingSourceService_Create_LoanLeavesBusinessAlone(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	sourceRepo.On("Save", mock.Anything, mock.AnythingOfType("*funding.FundingSource")).Return(nil)

	resp, err := service.CreateFundingSource(context.Background(), tenantID, CreateFundingSourceRequest{
		Type:     "LOAN",
		Name:     "Bank loan",
		Provider: "First National",
		Amount:   decimal.RequireFromString("5000.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "LOAN", resp.Type)
	assert.Equal(t, "ACTIVE", resp.Status)
	businessRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	businessRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	sourceRepo.AssertExpectations(t)
}

func TestFundingSourceService_Create_InvalidType(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	resp, err := service.CreateFundingSource(context.Background(), newTestTenantID(), CreateFundingSourceRequest{
		Type:   "LOTTERY",
		Name:   "Windfall",
		Amount: decimal.RequireFromString("100.00"),
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TYPE", domainErr.Code)
	sourceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFundingSourceService_Create_NegativeAmount(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	_, err := service.CreateFundingSource(context.Background(), newTestTenantID(), CreateFundingSourceRequest{
		Type:   "GRANT",
		Name:   "Negative grant",
		Amount: decimal.RequireFromString("-1.00"),
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	sourceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFundingSourceService_Update_AmountDeltaShiftsBalanceAndBusiness(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	source := createTestSource(t, tenantID, funding.SourceTypeOpeningBalance, "200.00")
	source.RemainingBalance = decimal.RequireFromString("150.00")
	business := createTestBusiness(t, tenantID, "200.00")

	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, source.ID).Return(source, nil)
	sourceRepo.On("Save", mock.Anything, source).Return(nil)
	businessRepo.On("FindByID", mock.Anything, tenantID).Return(business, nil)
	businessRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *identity.Business) bool {
		return b.OpeningBalance.Equal(decimal.RequireFromString("260.00"))
	})).Return(nil)

	newAmount := decimal.RequireFromString("260.00")
	resp, err := service.UpdateFundingSource(context.Background(), tenantID, source.ID, UpdateFundingSourceRequest{
		Name:   source.Name,
		Amount: &newAmount,
	})

	assert.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("260.00")))
	assert.True(t, resp.RemainingBalance.Equal(decimal.RequireFromString("210.00")))
	assert.True(t, resp.SpentAmount.Equal(decimal.RequireFromString("50.00")))
	sourceRepo.AssertExpectations(t)
	businessRepo.AssertExpectations(t)
}

func TestFundingSourceService_Update_AmountBelowSpentRejected(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	source := createTestSource(t, tenantID, funding.SourceTypeGrant, "200.00")
	source.RemainingBalance = decimal.RequireFromString("150.00")

	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, source.ID).Return(source, nil)

	newAmount := decimal.RequireFromString("40.00")
	_, err := service.UpdateFundingSource(context.Background(), tenantID, source.ID, UpdateFundingSourceRequest{
		Name:   source.Name,
		Amount: &newAmount,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	sourceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFundingSourceService_Update_NotFound(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	id := uuid.New()
	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, id).Return(nil, nil)

	_, err := service.UpdateFundingSource(context.Background(), tenantID, id, UpdateFundingSourceRequest{Name: "Whatever"})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestFundingSourceService_Update_CloseSource(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	source := createTestSource(t, tenantID, funding.SourceTypeLoan, "500.00")

	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, source.ID).Return(source, nil)
	sourceRepo.On("Save", mock.Anything, source).Return(nil)

	closed := "CLOSED"
	resp, err := service.UpdateFundingSource(context.Background(), tenantID, source.ID, UpdateFundingSourceRequest{
		Name:   source.Name,
		Status: &closed,
	})

	assert.NoError(t, err)
	assert.Equal(t, "CLOSED", resp.Status)
	sourceRepo.AssertExpectations(t)
}

func TestFundingSourceService_Delete_RefusedWhileInUse(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	source := createTestSource(t, tenantID, funding.SourceTypeGrant, "300.00")

	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, source.ID).Return(source, nil)
	expenditureRepo.On("CountByFundingSource", mock.Anything, tenantID, source.ID).Return(int64(3), nil)

	err := service.DeleteFundingSource(context.Background(), tenantID, source.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SOURCE_IN_USE", domainErr.Code)
	sourceRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestFundingSourceService_Delete_OpeningBalanceSubtractsFromBusiness(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	source := createTestSource(t, tenantID, funding.SourceTypeOpeningBalance, "250.00")
	business := createTestBusiness(t, tenantID, "400.00")

	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, source.ID).Return(source, nil)
	expenditureRepo.On("CountByFundingSource", mock.Anything, tenantID, source.ID).Return(int64(0), nil)
	sourceRepo.On("DeleteForTenant", mock.Anything, tenantID, source.ID).Return(nil)
	businessRepo.On("FindByID", mock.Anything, tenantID).Return(business, nil)
	businessRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *identity.Business) bool {
		return b.OpeningBalance.Equal(decimal.RequireFromString("150.00"))
	})).Return(nil)

	err := service.DeleteFundingSource(context.Background(), tenantID, source.ID)

	assert.NoError(t, err)
	sourceRepo.AssertExpectations(t)
	expenditureRepo.AssertExpectations(t)
	businessRepo.AssertExpectations(t)
}

func TestFundingSourceService_Delete_NotFound(t *testing.T) {
	sourceRepo := new(MockFundingSourceRepository)
	businessRepo := new(MockBusinessRepository)
	expenditureRepo := new(MockExpenditureRepository)
	service := newFundingSourceServiceForTest(sourceRepo, businessRepo, expenditureRepo)

	tenantID := newTestTenantID()
	id := uuid.New()
	sourceRepo.On("FindByIDForTenant", mock.Anything, tenantID, id).Return(nil, nil)

	err := service.DeleteFundingSource(context.Background(), tenantID, id)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	expenditureRepo.AssertNotCalled(t, "CountByFundingSource", mock.Anything, mock.Anything, mock.Anything)
}
