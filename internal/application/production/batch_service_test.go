package production

import (
	"context"
	"testing"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/production"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockBatchRepository is a mock implementation of BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.Batch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) ([]production.Batch, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newBatchServiceForTest(batchRepo *MockBatchRepository, productRepo *MockProductRepository) *BatchService {
	scope := NewNoOpTransactionScope(batchRepo, productRepo)
	return NewBatchService(scope, zap.NewNop())
}

func createTestProduct(t *testing.T, tenantID uuid.UUID, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		tenantID,
		"Widget",
		"WID-001",
		"",
		valueobject.NewMoney(decimal.RequireFromString("20.00")),
		valueobject.NewMoney(decimal.RequireFromString("8.00")),
	)
	assert.NoError(t, err)
	product.StockQuantity = stock
	return product
}

func createTestBatch(t *testing.T, tenantID, productID uuid.UUID, quantity int) *production.Batch {
	t.Helper()
	batch, err := production.NewBatch(tenantID, productID, quantity, decimal.RequireFromString("15.00"), "")
	assert.NoError(t, err)
	return batch
}

func TestBatchService_CreateBatch_RequiresExistingProduct(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	productID := uuid.New()
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, productID).Return(nil, nil)

	_, err := service.CreateBatch(context.Background(), tenantID, CreateBatchRequest{
		ProductID: productID,
		Quantity:  10,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBatchService_CreateBatch_StartsInProgress(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	product := createTestProduct(t, tenantID, 0)

	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	batchRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *production.Batch) bool {
		return b.Status == production.BatchStatusInProgress && b.Quantity == 25
	})).Return(nil)

	resp, err := service.CreateBatch(context.Background(), tenantID, CreateBatchRequest{
		ProductID:    product.ID,
		Quantity:     25,
		MaterialCost: decimal.RequireFromString("40.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", resp.Status)
	assert.Nil(t, resp.CompletedAt)
	batchRepo.AssertExpectations(t)
}

func TestBatchService_CreateBatch_NonPositiveQuantity(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	_, err := service.CreateBatch(context.Background(), newTestTenantID(), CreateBatchRequest{
		ProductID: uuid.New(),
		Quantity:  0,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBatchService_CompleteBatch_AddsQuantityToStock(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	product := createTestProduct(t, tenantID, 5)
	batch := createTestBatch(t, tenantID, product.ID, 20)

	batchRepo.On("FindByIDForTenant", mock.Anything, tenantID, batch.ID).Return(batch, nil)
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.StockQuantity == 25
	})).Return(nil)
	batchRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *production.Batch) bool {
		return b.Status == production.BatchStatusCompleted && b.CompletedAt != nil
	})).Return(nil)

	resp, err := service.CompleteBatch(context.Background(), tenantID, batch.ID)

	assert.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.NotNil(t, resp.CompletedAt)
	batchRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestBatchService_CompleteBatch_AlreadyCompleted(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	batch := createTestBatch(t, tenantID, uuid.New(), 10)
	assert.NoError(t, batch.Complete())

	batchRepo.On("FindByIDForTenant", mock.Anything, tenantID, batch.ID).Return(batch, nil)

	_, err := service.CompleteBatch(context.Background(), tenantID, batch.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBatchService_CompleteBatch_MissingProduct(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	batch := createTestBatch(t, tenantID, uuid.New(), 10)

	batchRepo.On("FindByIDForTenant", mock.Anything, tenantID, batch.ID).Return(batch, nil)
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, batch.ProductID).Return(nil, nil)

	_, err := service.CompleteBatch(context.Background(), tenantID, batch.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBatchService_CancelBatch_OnlyInProgress(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	batch := createTestBatch(t, tenantID, uuid.New(), 10)
	assert.NoError(t, batch.Cancel())

	batchRepo.On("FindByIDForTenant", mock.Anything, tenantID, batch.ID).Return(batch, nil)

	_, err := service.CancelBatch(context.Background(), tenantID, batch.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBatchService_CancelBatch_LeavesStockUntouched(t *testing.T) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	service := newBatchServiceForTest(batchRepo, productRepo)

	tenantID := newTestTenantID()
	batch := createTestBatch(t, tenantID, uuid.New(), 10)

	batchRepo.On("FindByIDForTenant", mock.Anything, tenantID, batch.ID).Return(batch, nil)
	batchRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *production.Batch) bool {
		return b.Status == production.BatchStatusCancelled
	})).Return(nil)

	resp, err := service.CancelBatch(context.Background(), tenantID, batch.ID)

	assert.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	productRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	batchRepo.AssertExpectations(t)
}
