package installment

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/backend/internal/domain/installment"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockPlanRepository is a mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*installment.Plan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*installment.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter installment.PlanFilter) ([]installment.Plan, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]installment.Plan), args.Error(1)
}

func (m *MockPlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter installment.PlanFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *installment.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*installment.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*installment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByPlan(ctx context.Context, tenantID, planID uuid.UUID) ([]installment.Payment, error) {
	args := m.Called(ctx, tenantID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]installment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *installment.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newInstallmentServiceForTest(planRepo *MockPlanRepository, paymentRepo *MockPaymentRepository) *InstallmentService {
	scope := NewNoOpTransactionScope(planRepo, paymentRepo)
	return NewInstallmentService(scope, zap.NewNop())
}

func createTestPlan(t *testing.T, tenantID uuid.UUID, total string) *installment.Plan {
	t.Helper()
	plan, err := installment.NewPlan(
		tenantID,
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		valueobject.NewMoney(decimal.RequireFromString(total)),
		time.Now(),
		nil,
		"",
	)
	assert.NoError(t, err)
	return plan
}

func createTestPayment(t *testing.T, tenantID, planID uuid.UUID, amount string) installment.Payment {
	t.Helper()
	payment, err := installment.NewPayment(
		tenantID,
		planID,
		valueobject.NewMoney(decimal.RequireFromString(amount)),
		time.Now(),
		"",
	)
	assert.NoError(t, err)
	return *payment
}

func TestInstallmentService_AddPayment_RecomputesPlan(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "300.00")

	payments := []installment.Payment{
		createTestPayment(t, tenantID, plan.ID, "100.00"),
		createTestPayment(t, tenantID, plan.ID, "50.00"),
	}

	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)
	paymentRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *installment.Payment) bool {
		return p.PlanID == plan.ID && p.Amount.Equal(decimal.RequireFromString("50.00"))
	})).Return(nil)
	paymentRepo.On("FindByPlan", mock.Anything, tenantID, plan.ID).Return(payments, nil)
	planRepo.On("Save", mock.Anything, plan).Return(nil)

	resp, err := service.AddPayment(context.Background(), tenantID, plan.ID, AddPaymentRequest{
		Amount: decimal.RequireFromString("50.00"),
	})

	assert.NoError(t, err)
	assert.True(t, resp.PaidAmount.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, resp.OutstandingAmount.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Len(t, resp.Payments, 2)
	planRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestInstallmentService_AddPayment_CompletesPlanAtFullAmount(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "200.00")

	payments := []installment.Payment{
		createTestPayment(t, tenantID, plan.ID, "120.00"),
		createTestPayment(t, tenantID, plan.ID, "80.00"),
	}

	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)
	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*installment.Payment")).Return(nil)
	paymentRepo.On("FindByPlan", mock.Anything, tenantID, plan.ID).Return(payments, nil)
	planRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *installment.Plan) bool {
		return p.Status == installment.PlanStatusCompleted
	})).Return(nil)

	resp, err := service.AddPayment(context.Background(), tenantID, plan.ID, AddPaymentRequest{
		Amount: decimal.RequireFromString("80.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.True(t, resp.OutstandingAmount.IsZero())
	planRepo.AssertExpectations(t)
}

func TestInstallmentService_AddPayment_RejectedOnCompletedPlan(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "100.00")
	plan.Recalculate([]installment.Payment{createTestPayment(t, tenantID, plan.ID, "100.00")})
	assert.True(t, plan.IsCompleted())

	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)

	_, err := service.AddPayment(context.Background(), tenantID, plan.ID, AddPaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
	})

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PLAN_COMPLETED", domainErr.Code)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInstallmentService_AddPayment_PlanNotFound(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	planID := uuid.New()
	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, planID).Return(nil, nil)

	_, err := service.AddPayment(context.Background(), tenantID, planID, AddPaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestInstallmentService_DeletePayment_ReopensCompletedPlan(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "200.00")
	first := createTestPayment(t, tenantID, plan.ID, "120.00")
	second := createTestPayment(t, tenantID, plan.ID, "80.00")
	plan.Recalculate([]installment.Payment{first, second})
	assert.True(t, plan.IsCompleted())

	paymentRepo.On("FindByIDForTenant", mock.Anything, tenantID, second.ID).Return(&second, nil)
	paymentRepo.On("DeleteForTenant", mock.Anything, tenantID, second.ID).Return(nil)
	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)
	paymentRepo.On("FindByPlan", mock.Anything, tenantID, plan.ID).Return([]installment.Payment{first}, nil)
	planRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *installment.Plan) bool {
		return p.Status == installment.PlanStatusActive && p.PaidAmount.Equal(decimal.RequireFromString("120.00"))
	})).Return(nil)

	resp, err := service.DeletePayment(context.Background(), tenantID, second.ID)

	assert.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.True(t, resp.OutstandingAmount.Equal(decimal.RequireFromString("80.00")))
	planRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestInstallmentService_UpdatePayment_CorrectionRecomputesPlan(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "200.00")
	payment := createTestPayment(t, tenantID, plan.ID, "50.00")

	corrected := payment
	corrected.Amount = decimal.RequireFromString("75.00")

	paymentRepo.On("FindByIDForTenant", mock.Anything, tenantID, payment.ID).Return(&payment, nil)
	paymentRepo.On("Save", mock.Anything, &payment).Return(nil)
	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)
	paymentRepo.On("FindByPlan", mock.Anything, tenantID, plan.ID).Return([]installment.Payment{corrected}, nil)
	planRepo.On("Save", mock.Anything, plan).Return(nil)

	resp, err := service.UpdatePayment(context.Background(), tenantID, payment.ID, UpdatePaymentRequest{
		Amount: decimal.RequireFromString("75.00"),
	})

	assert.NoError(t, err)
	assert.True(t, resp.PaidAmount.Equal(decimal.RequireFromString("75.00")))
	paymentRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}

func TestInstallmentService_UpdatePayment_NonPositiveAmount(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "200.00")
	payment := createTestPayment(t, tenantID, plan.ID, "50.00")

	paymentRepo.On("FindByIDForTenant", mock.Anything, tenantID, payment.ID).Return(&payment, nil)

	_, err := service.UpdatePayment(context.Background(), tenantID, payment.ID, UpdatePaymentRequest{
		Amount: decimal.Zero,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInstallmentService_UpdatePlan_LoweredTotalCompletesPlan(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "300.00")
	payments := []installment.Payment{createTestPayment(t, tenantID, plan.ID, "250.00")}
	plan.Recalculate(payments)
	assert.Equal(t, installment.PlanStatusActive, plan.Status)

	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)
	paymentRepo.On("FindByPlan", mock.Anything, tenantID, plan.ID).Return(payments, nil)
	planRepo.On("Save", mock.Anything, plan).Return(nil)

	newTotal := decimal.RequireFromString("250.00")
	resp, err := service.UpdatePlan(context.Background(), tenantID, plan.ID, UpdatePlanRequest{
		TotalAmount: &newTotal,
	})

	assert.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.True(t, resp.OutstandingAmount.IsZero())
	planRepo.AssertExpectations(t)
}

func TestInstallmentService_DeletePlan_RemovesPayments(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	tenantID := newTestTenantID()
	plan := createTestPlan(t, tenantID, "200.00")
	first := createTestPayment(t, tenantID, plan.ID, "60.00")
	second := createTestPayment(t, tenantID, plan.ID, "40.00")

	planRepo.On("FindByIDForTenant", mock.Anything, tenantID, plan.ID).Return(plan, nil)
	paymentRepo.On("FindByPlan", mock.Anything, tenantID, plan.ID).Return([]installment.Payment{first, second}, nil)
	paymentRepo.On("DeleteForTenant", mock.Anything, tenantID, first.ID).Return(nil)
	paymentRepo.On("DeleteForTenant", mock.Anything, tenantID, second.ID).Return(nil)
	planRepo.On("DeleteForTenant", mock.Anything, tenantID, plan.ID).Return(nil)

	err := service.DeletePlan(context.Background(), tenantID, plan.ID)

	assert.NoError(t, err)
	planRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestInstallmentService_CreatePlan_InvalidTotal(t *testing.T) {
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	service := newInstallmentServiceForTest(planRepo, paymentRepo)

	_, err := service.CreatePlan(context.Background(), newTestTenantID(), CreatePlanRequest{
		ProductID:   uuid.New(),
		CustomerID:  uuid.New(),
		TotalAmount: decimal.Zero,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
