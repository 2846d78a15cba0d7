package production

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/production"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchService provides production batch operations. Completing a batch
// feeds its quantity into product stock within the same transaction.
type BatchService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(scope TransactionScope, logger *zap.Logger) *BatchService {
	return &BatchService{
		scope:  scope,
		logger: logger,
	}
}

// BatchResponse represents a production batch in API responses
type BatchResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	Status       string          `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateBatchRequest represents a request to start a production batch
type CreateBatchRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	Notes        string          `json:"notes"`
}

// BatchListFilter defines filtering options for production batch queries
type BatchListFilter struct {
	Status    string     `form:"status"`
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// CreateBatch starts a new production batch
func (s *BatchService) CreateBatch(ctx context.Context, tenantID uuid.UUID, req CreateBatchRequest) (*BatchResponse, error) {
	batch, err := production.NewBatch(tenantID, req.ProductID, req.Quantity, req.MaterialCost, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return repos.BatchRepo().Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Production batch started",
		zap.String("batch_id", batch.ID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	return toBatchResponse(batch), nil
}

// GetBatchByID gets a production batch by ID
func (s *BatchService) GetBatchByID(ctx context.Context, tenantID, id uuid.UUID) (*BatchResponse, error) {
	var resp *BatchResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if batch == nil {
			return shared.NewDomainError("NOT_FOUND", "Production batch not found")
		}
		resp = toBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListBatches lists production batches with filtering
func (s *BatchService) ListBatches(ctx context.Context, tenantID uuid.UUID, filter BatchListFilter) ([]BatchResponse, int64, error) {
	domainFilter := production.BatchFilter{
		ProductID: filter.ProductID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Status != "" {
		status := production.BatchStatus(filter.Status)
		domainFilter.Status = &status
	}

	var (
		responses []BatchResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.BatchRepo().FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.BatchRepo().CountForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		responses = make([]BatchResponse, 0, len(batches))
		for i := range batches {
			responses = append(responses, *toBatchResponse(&batches[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// CompleteBatch marks a batch as finished and adds its quantity to the
// product's stock, atomically.
func (s *BatchService) CompleteBatch(ctx context.Context, tenantID, id uuid.UUID) (*BatchResponse, error) {
	var resp *BatchResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if batch == nil {
			return shared.NewDomainError("NOT_FOUND", "Production batch not found")
		}
		if err := batch.Complete(); err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, batch.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		if err := product.AdjustStock(batch.Quantity); err != nil {
			return err
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}
		resp = toBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Production batch completed", zap.String("batch_id", id.String()))
	return resp, nil
}

// CancelBatch abandons an in-progress batch
func (s *BatchService) CancelBatch(ctx context.Context, tenantID, id uuid.UUID) (*BatchResponse, error) {
	var resp *BatchResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if batch == nil {
			return shared.NewDomainError("NOT_FOUND", "Production batch not found")
		}
		if err := batch.Cancel(); err != nil {
			return err
		}
		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}
		resp = toBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Production batch cancelled", zap.String("batch_id", id.String()))
	return resp, nil
}

func toBatchResponse(b *production.Batch) *BatchResponse {
	return &BatchResponse{
		ID:           b.ID,
		TenantID:     b.TenantID,
		ProductID:    b.ProductID,
		Quantity:     b.Quantity,
		MaterialCost: b.MaterialCost,
		Status:       string(b.Status),
		StartedAt:    b.StartedAt,
		CompletedAt:  b.CompletedAt,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
