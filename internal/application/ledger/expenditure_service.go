package ledger

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenditureService implements the expenditure reconciliation workflow.
// Every mutating entry point runs in a single transaction that keeps three
// records consistent: the expenditure row, its mirrored EXPENSE ledger
// transaction, and the remaining balance of the attributed funding source.
type ExpenditureService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewExpenditureService creates a new ExpenditureService
func NewExpenditureService(scope TransactionScope, logger *zap.Logger) *ExpenditureService {
	return &ExpenditureService{
		scope:  scope,
		logger: logger,
	}
}

// ExpenditureResponse represents an expenditure in API responses
type ExpenditureResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	SpentAt         time.Time       `json:"spent_at"`
	FundingSourceID *uuid.UUID      `json:"funding_source_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CreateExpenditureRequest represents a request to record an expenditure
type CreateExpenditureRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	SpentAt         time.Time       `json:"spent_at"`
	FundingSourceID *uuid.UUID      `json:"funding_source_id"`
}

// UpdateExpenditureRequest represents a request to update an expenditure
type UpdateExpenditureRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	SpentAt         time.Time       `json:"spent_at"`
	FundingSourceID *uuid.UUID      `json:"funding_source_id"`
}

// ExpenditureListFilter defines filtering options for expenditure list queries
type ExpenditureListFilter struct {
	Search          string     `form:"search"`
	Category        string     `form:"category"`
	FundingSourceID *uuid.UUID `form:"funding_source_id"`
	FromDate        *time.Time `form:"from_date"`
	ToDate          *time.Time `form:"to_date"`
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
}

// CreateExpenditure records an expenditure, draws down the attributed funding
// source and writes the mirrored ledger transaction, all atomically.
func (s *ExpenditureService) CreateExpenditure(ctx context.Context, tenantID uuid.UUID, req CreateExpenditureRequest) (*ExpenditureResponse, error) {
	amount := valueobject.NewMoney(req.Amount)

	expenditure, err := ledger.NewExpenditure(
		tenantID,
		amount,
		ledger.ExpenditureCategory(req.Category),
		req.Description,
		req.SpentAt,
		req.FundingSourceID,
	)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if expenditure.HasFundingSource() {
			if err := repos.FundingSourceRepo().SubtractFromBalance(ctx, tenantID, *expenditure.FundingSourceID, expenditure.Amount); err != nil {
				return err
			}
		}
		if err := repos.ExpenditureRepo().Save(ctx, expenditure); err != nil {
			return err
		}
		return repos.TransactionRepo().Save(ctx, ledger.NewExpenseTransaction(expenditure))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Expenditure recorded",
		zap.String("expenditure_id", expenditure.ID.String()),
		zap.String("amount", expenditure.Amount.String()))

	return toExpenditureResponse(expenditure), nil
}

// GetExpenditureByID gets an expenditure by ID
func (s *ExpenditureService) GetExpenditureByID(ctx context.Context, tenantID, id uuid.UUID) (*ExpenditureResponse, error) {
	var resp *ExpenditureResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expenditure, err := repos.ExpenditureRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if expenditure == nil {
			return shared.NewDomainError("NOT_FOUND", "Expenditure not found")
		}
		resp = toExpenditureResponse(expenditure)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListExpenditures lists expenditures with filtering
func (s *ExpenditureService) ListExpenditures(ctx context.Context, tenantID uuid.UUID, filter ExpenditureListFilter) ([]ExpenditureResponse, int64, error) {
	domainFilter := ledger.ExpenditureFilter{
		FundingSourceID: filter.FundingSourceID,
		FromDate:        filter.FromDate,
		ToDate:          filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Category != "" {
		category := ledger.ExpenditureCategory(filter.Category)
		domainFilter.Category = &category
	}

	var (
		responses []ExpenditureResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expenditures, err := repos.ExpenditureRepo().FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.ExpenditureRepo().CountForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		responses = make([]ExpenditureResponse, 0, len(expenditures))
		for i := range expenditures {
			responses = append(responses, *toExpenditureResponse(&expenditures[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// UpdateExpenditure reconciles an expenditure change: the old attribution is
// credited back, the new one debited, and the mirror transaction replaced.
// Runs as one transaction so a failed debit leaves everything untouched.
func (s *ExpenditureService) UpdateExpenditure(ctx context.Context, tenantID, id uuid.UUID, req UpdateExpenditureRequest) (*ExpenditureResponse, error) {
	var resp *ExpenditureResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expenditure, err := repos.ExpenditureRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if expenditure == nil {
			return shared.NewDomainError("NOT_FOUND", "Expenditure not found")
		}

		oldAmount := expenditure.Amount
		oldSourceID := expenditure.FundingSourceID

		if err := expenditure.Update(
			valueobject.NewMoney(req.Amount),
			ledger.ExpenditureCategory(req.Category),
			req.Description,
			req.SpentAt,
			req.FundingSourceID,
		); err != nil {
			return err
		}

		if oldSourceID != nil {
			if err := repos.FundingSourceRepo().AddToBalance(ctx, tenantID, *oldSourceID, oldAmount); err != nil {
				return err
			}
		}
		if expenditure.HasFundingSource() {
			if err := repos.FundingSourceRepo().SubtractFromBalance(ctx, tenantID, *expenditure.FundingSourceID, expenditure.Amount); err != nil {
				return err
			}
		}

		if err := repos.TransactionRepo().DeleteByExpenditureID(ctx, tenantID, expenditure.ID); err != nil {
			return err
		}
		if err := repos.TransactionRepo().Save(ctx, ledger.NewExpenseTransaction(expenditure)); err != nil {
			return err
		}
		if err := repos.ExpenditureRepo().Save(ctx, expenditure); err != nil {
			return err
		}

		resp = toExpenditureResponse(expenditure)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Expenditure updated", zap.String("expenditure_id", id.String()))
	return resp, nil
}

// DeleteExpenditure removes an expenditure, credits its attribution back and
// deletes the mirror transaction, all atomically.
func (s *ExpenditureService) DeleteExpenditure(ctx context.Context, tenantID, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expenditure, err := repos.ExpenditureRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if expenditure == nil {
			return shared.NewDomainError("NOT_FOUND", "Expenditure not found")
		}

		if expenditure.HasFundingSource() {
			if err := repos.FundingSourceRepo().AddToBalance(ctx, tenantID, *expenditure.FundingSourceID, expenditure.Amount); err != nil {
				return err
			}
		}
		if err := repos.TransactionRepo().DeleteByExpenditureID(ctx, tenantID, expenditure.ID); err != nil {
			return err
		}
		return repos.ExpenditureRepo().DeleteForTenant(ctx, tenantID, expenditure.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Expenditure deleted", zap.String("expenditure_id", id.String()))
	return nil
}

func toExpenditureResponse(e *ledger.Expenditure) *ExpenditureResponse {
	return &ExpenditureResponse{
		ID:              e.ID,
		TenantID:        e.TenantID,
		Amount:          e.Amount,
		Category:        e.Category.String(),
		Description:     e.Description,
		SpentAt:         e.SpentAt,
		FundingSourceID: e.FundingSourceID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}
