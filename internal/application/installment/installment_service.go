package installment

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/installment"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InstallmentService provides installment plan and payment operations. The
// plan's paid amount and status are never edited directly; after every
// payment mutation they are recomputed from the full payment set inside the
// same transaction.
type InstallmentService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(scope TransactionScope, logger *zap.Logger) *InstallmentService {
	return &InstallmentService{
		scope:  scope,
		logger: logger,
	}
}

// PlanResponse represents an installment plan in API responses
type PlanResponse struct {
	ID                uuid.UUID         `json:"id"`
	TenantID          uuid.UUID         `json:"tenant_id"`
	ProductID         uuid.UUID         `json:"product_id"`
	CustomerID        uuid.UUID         `json:"customer_id"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	PaidAmount        decimal.Decimal   `json:"paid_amount"`
	OutstandingAmount decimal.Decimal   `json:"outstanding_amount"`
	Status            string            `json:"status"`
	StartDate         time.Time         `json:"start_date"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Payments          []PaymentResponse `json:"payments,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Version           int               `json:"version"`
}

// PaymentResponse represents an installment payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	PlanID    uuid.UUID       `json:"plan_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreatePlanRequest represents a request to create an installment plan
type CreatePlanRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	TotalAmount decimal.Decimal `json:"total_amount" binding:"required"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Notes       string          `json:"notes"`
}

// UpdatePlanRequest represents a request to update plan terms
type UpdatePlanRequest struct {
	TotalAmount *decimal.Decimal `json:"total_amount"`
	EndDate     *time.Time       `json:"end_date"`
	Notes       *string          `json:"notes"`
}

// AddPaymentRequest represents a request to record a payment against a plan
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	PaidAt time.Time       `json:"paid_at"`
	Notes  string          `json:"notes"`
}

// UpdatePaymentRequest represents a request to correct an existing payment
type UpdatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

// PlanListFilter defines filtering options for plan list queries
type PlanListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreatePlan creates a new installment plan
func (s *InstallmentService) CreatePlan(ctx context.Context, tenantID uuid.UUID, req CreatePlanRequest) (*PlanResponse, error) {
	plan, err := installment.NewPlan(
		tenantID,
		req.ProductID,
		req.CustomerID,
		valueobject.NewMoney(req.TotalAmount),
		req.StartDate,
		req.EndDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.PlanRepo().Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installment plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("total_amount", plan.TotalAmount.String()))

	return toPlanResponse(plan, nil), nil
}

// GetPlanByID gets a plan with its payments
func (s *InstallmentService) GetPlanByID(ctx context.Context, tenantID, id uuid.UUID) (*PlanResponse, error) {
	var resp *PlanResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.PlanRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if plan == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment plan not found")
		}
		payments, err := repos.PaymentRepo().FindByPlan(ctx, tenantID, id)
		if err != nil {
			return err
		}
		resp = toPlanResponse(plan, payments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListPlans lists installment plans with filtering
func (s *InstallmentService) ListPlans(ctx context.Context, tenantID uuid.UUID, filter PlanListFilter) ([]PlanResponse, int64, error) {
	domainFilter := installment.PlanFilter{
		CustomerID: filter.CustomerID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		status := installment.PlanStatus(filter.Status)
		domainFilter.Status = &status
	}

	var (
		responses []PlanResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plans, err := repos.PlanRepo().FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.PlanRepo().CountForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		responses = make([]PlanResponse, 0, len(plans))
		for i := range plans {
			responses = append(responses, *toPlanResponse(&plans[i], nil))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// UpdatePlan updates plan terms and recomputes paid amount and status against
// the new total from the full payment set.
func (s *InstallmentService) UpdatePlan(ctx context.Context, tenantID, id uuid.UUID, req UpdatePlanRequest) (*PlanResponse, error) {
	var resp *PlanResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.PlanRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if plan == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment plan not found")
		}

		var totalAmount *valueobject.Money
		if req.TotalAmount != nil {
			m := valueobject.NewMoney(*req.TotalAmount)
			totalAmount = &m
		}
		if err := plan.UpdateTerms(totalAmount, req.EndDate, req.Notes); err != nil {
			return err
		}

		payments, err := repos.PaymentRepo().FindByPlan(ctx, tenantID, id)
		if err != nil {
			return err
		}
		plan.Recalculate(payments)

		if err := repos.PlanRepo().Save(ctx, plan); err != nil {
			return err
		}
		resp = toPlanResponse(plan, payments)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installment plan updated", zap.String("plan_id", id.String()))
	return resp, nil
}

// DeletePlan removes a plan together with all its payments
func (s *InstallmentService) DeletePlan(ctx context.Context, tenantID, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.PlanRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if plan == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment plan not found")
		}

		payments, err := repos.PaymentRepo().FindByPlan(ctx, tenantID, id)
		if err != nil {
			return err
		}
		for i := range payments {
			if err := repos.PaymentRepo().DeleteForTenant(ctx, tenantID, payments[i].ID); err != nil {
				return err
			}
		}
		return repos.PlanRepo().DeleteForTenant(ctx, tenantID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Installment plan deleted", zap.String("plan_id", id.String()))
	return nil
}

// AddPayment records a payment against an active plan and recomputes the
// plan. Completed plans reject new payments.
func (s *InstallmentService) AddPayment(ctx context.Context, tenantID, planID uuid.UUID, req AddPaymentRequest) (*PlanResponse, error) {
	var resp *PlanResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.PlanRepo().FindByIDForTenant(ctx, tenantID, planID)
		if err != nil {
			return err
		}
		if plan == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment plan not found")
		}
		if err := plan.GuardAcceptsPayment(); err != nil {
			return err
		}

		payment, err := installment.NewPayment(tenantID, planID, valueobject.NewMoney(req.Amount), req.PaidAt, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		return s.recalculatePlan(ctx, repos, plan, &resp)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installment payment recorded",
		zap.String("plan_id", planID.String()),
		zap.String("amount", req.Amount.String()))

	return resp, nil
}

// UpdatePayment corrects an existing payment and recomputes its plan.
// No completed guard: a correction may reopen a completed plan.
func (s *InstallmentService) UpdatePayment(ctx context.Context, tenantID, paymentID uuid.UUID, req UpdatePaymentRequest) (*PlanResponse, error) {
	var resp *PlanResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByIDForTenant(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment payment not found")
		}

		if err := payment.Update(valueobject.NewMoney(req.Amount), req.Notes); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		plan, err := repos.PlanRepo().FindByIDForTenant(ctx, tenantID, payment.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment plan not found")
		}
		return s.recalculatePlan(ctx, repos, plan, &resp)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installment payment updated", zap.String("payment_id", paymentID.String()))
	return resp, nil
}

// DeletePayment removes a payment and recomputes its plan.
// No completed guard: removing a payment may reopen a completed plan.
func (s *InstallmentService) DeletePayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*PlanResponse, error) {
	var resp *PlanResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByIDForTenant(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment payment not found")
		}

		if err := repos.PaymentRepo().DeleteForTenant(ctx, tenantID, paymentID); err != nil {
			return err
		}

		plan, err := repos.PlanRepo().FindByIDForTenant(ctx, tenantID, payment.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return shared.NewDomainError("NOT_FOUND", "Installment plan not found")
		}
		return s.recalculatePlan(ctx, repos, plan, &resp)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installment payment deleted", zap.String("payment_id", paymentID.String()))
	return resp, nil
}

// recalculatePlan reloads the full payment set, recomputes the plan and
// persists it. The reload happens inside the mutation's transaction so the
// cached pair always reflects the committed payment set.
func (s *InstallmentService) recalculatePlan(ctx context.Context, repos TransactionalRepositories, plan *installment.Plan, resp **PlanResponse) error {
	payments, err := repos.PaymentRepo().FindByPlan(ctx, plan.TenantID, plan.ID)
	if err != nil {
		return err
	}
	plan.Recalculate(payments)
	if err := repos.PlanRepo().Save(ctx, plan); err != nil {
		return err
	}
	*resp = toPlanResponse(plan, payments)
	return nil
}

func toPlanResponse(p *installment.Plan, payments []installment.Payment) *PlanResponse {
	resp := &PlanResponse{
		ID:                p.ID,
		TenantID:          p.TenantID,
		ProductID:         p.ProductID,
		CustomerID:        p.CustomerID,
		TotalAmount:       p.TotalAmount,
		PaidAmount:        p.PaidAmount,
		OutstandingAmount: p.OutstandingAmount(),
		Status:            p.Status.String(),
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
	for i := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(&payments[i]))
	}
	return resp
}

func toPaymentResponse(p *installment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		PlanID:    p.PlanID,
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
