package installment

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PlanFilter defines filtering options for installment plan list queries
type PlanFilter struct {
	shared.Filter
	Status     *PlanStatus
	CustomerID *uuid.UUID
}

// PlanRepository defines persistence operations for installment plans
type PlanRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Plan, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PlanFilter) ([]Plan, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter PlanFilter) (int64, error)
	Save(ctx context.Context, plan *Plan) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentRepository defines persistence operations for installment payments
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindByPlan(ctx context.Context, tenantID, planID uuid.UUID) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
