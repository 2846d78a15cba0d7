package funding

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FundingSourceService provides funding source operations. Mutations of
// OPENING_BALANCE sources propagate their amount delta into the business
// opening-balance aggregate within the same transaction.
type FundingSourceService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewFundingSourceService creates a new FundingSourceService
func NewFundingSourceService(scope TransactionScope, logger *zap.Logger) *FundingSourceService {
	return &FundingSourceService{
		scope:  scope,
		logger: logger,
	}
}

// FundingSourceResponse represents a funding source in API responses
type FundingSourceResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	Type             string          `json:"type"`
	Name             string          `json:"name"`
	Provider         string          `json:"provider,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	SpentAmount      decimal.Decimal `json:"spent_amount"`
	ContractTerms    string          `json:"contract_terms,omitempty"`
	Status           string          `json:"status"`
	StartDate        *time.Time      `json:"start_date,omitempty"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// CreateFundingSourceRequest represents a request to create a funding source
type CreateFundingSourceRequest struct {
	Type          string          `json:"type" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Provider      string          `json:"provider"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ContractTerms string          `json:"contract_terms"`
	StartDate     *time.Time      `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
}

// UpdateFundingSourceRequest represents a request to update a funding source.
// Amount changes shift the remaining balance by the same delta; Status may
// only move to CLOSED.
type UpdateFundingSourceRequest struct {
	Name          string           `json:"name" binding:"required"`
	Provider      string           `json:"provider"`
	Amount        *decimal.Decimal `json:"amount"`
	ContractTerms string           `json:"contract_terms"`
	Status        *string          `json:"status"`
	StartDate     *time.Time       `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
}

// FundingSourceListFilter defines filtering options for list queries
type FundingSourceListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateFundingSource creates a funding source with a full remaining balance.
// Opening-balance sources add their amount to the business aggregate in the
// same transaction.
func (s *FundingSourceService) CreateFundingSource(ctx context.Context, tenantID uuid.UUID, req CreateFundingSourceRequest) (*FundingSourceResponse, error) {
	source, err := funding.NewFundingSource(
		tenantID,
		funding.SourceType(req.Type),
		req.Name,
		req.Provider,
		valueobject.NewMoney(req.Amount),
	)
	if err != nil {
		return nil, err
	}
	source.ContractTerms = req.ContractTerms
	source.StartDate = req.StartDate
	source.EndDate = req.EndDate

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.FundingSourceRepo().Save(ctx, source); err != nil {
			return err
		}
		if source.IsOpeningBalance() {
			return s.adjustOpeningBalance(ctx, repos, tenantID, source.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Funding source created",
		zap.String("funding_source_id", source.ID.String()),
		zap.String("type", source.Type.String()),
		zap.String("amount", source.Amount.String()))

	return toFundingSourceResponse(source), nil
}

// GetFundingSourceByID gets a funding source by ID
func (s *FundingSourceService) GetFundingSourceByID(ctx context.Context, tenantID, id uuid.UUID) (*FundingSourceResponse, error) {
	var resp *FundingSourceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.FundingSourceRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if source == nil {
			return shared.NewDomainError("NOT_FOUND", "Funding source not found")
		}
		resp = toFundingSourceResponse(source)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListFundingSources lists funding sources with filtering
func (s *FundingSourceService) ListFundingSources(ctx context.Context, tenantID uuid.UUID, filter FundingSourceListFilter) ([]FundingSourceResponse, int64, error) {
	domainFilter := funding.SourceFilter{}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Type != "" {
		sourceType := funding.SourceType(filter.Type)
		domainFilter.Type = &sourceType
	}
	if filter.Status != "" {
		status := funding.SourceStatus(filter.Status)
		domainFilter.Status = &status
	}

	var (
		responses []FundingSourceResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sources, err := repos.FundingSourceRepo().FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.FundingSourceRepo().CountForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return err
		}
		responses = make([]FundingSourceResponse, 0, len(sources))
		for i := range sources {
			responses = append(responses, *toFundingSourceResponse(&sources[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// UpdateFundingSource updates a funding source. An amount change shifts the
// remaining balance by the delta and, for opening-balance sources, the
// business aggregate by the same delta, atomically.
func (s *FundingSourceService) UpdateFundingSource(ctx context.Context, tenantID, id uuid.UUID, req UpdateFundingSourceRequest) (*FundingSourceResponse, error) {
	var resp *FundingSourceResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.FundingSourceRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if source == nil {
			return shared.NewDomainError("NOT_FOUND", "Funding source not found")
		}

		if err := source.UpdateDetails(req.Name, req.Provider, req.ContractTerms, req.StartDate, req.EndDate); err != nil {
			return err
		}

		if req.Amount != nil {
			delta, err := source.ChangeAmount(valueobject.NewMoney(*req.Amount))
			if err != nil {
				return err
			}
			if source.IsOpeningBalance() && !delta.IsZero() {
				if err := s.adjustOpeningBalance(ctx, repos, tenantID, delta); err != nil {
					return err
				}
			}
		}

		if req.Status != nil && funding.SourceStatus(*req.Status) == funding.SourceStatusClosed && source.Status != funding.SourceStatusClosed {
			if err := source.Close(); err != nil {
				return err
			}
		}

		if err := repos.FundingSourceRepo().Save(ctx, source); err != nil {
			return err
		}
		resp = toFundingSourceResponse(source)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Funding source updated", zap.String("funding_source_id", id.String()))
	return resp, nil
}

// DeleteFundingSource removes a funding source with no attributed
// expenditures. Opening-balance sources subtract their amount from the
// business aggregate in the same transaction.
func (s *FundingSourceService) DeleteFundingSource(ctx context.Context, tenantID, id uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.FundingSourceRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if source == nil {
			return shared.NewDomainError("NOT_FOUND", "Funding source not found")
		}

		attributed, err := repos.ExpenditureRepo().CountByFundingSource(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if attributed > 0 {
			return shared.NewDomainError("SOURCE_IN_USE",
				"Funding source has attributed expenditures and cannot be deleted")
		}

		if err := repos.FundingSourceRepo().DeleteForTenant(ctx, tenantID, id); err != nil {
			return err
		}
		if source.IsOpeningBalance() {
			return s.adjustOpeningBalance(ctx, repos, tenantID, source.Amount.Neg())
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Funding source deleted", zap.String("funding_source_id", id.String()))
	return nil
}

func (s *FundingSourceService) adjustOpeningBalance(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, delta decimal.Decimal) error {
	business, err := repos.BusinessRepo().FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if business == nil {
		return shared.NewDomainError("NOT_FOUND", "Business not found")
	}
	business.AdjustOpeningBalance(delta)
	return repos.BusinessRepo().Save(ctx, business)
}

func toFundingSourceResponse(f *funding.FundingSource) *FundingSourceResponse {
	return &FundingSourceResponse{
		ID:               f.ID,
		TenantID:         f.TenantID,
		Type:             f.Type.String(),
		Name:             f.Name,
		Provider:         f.Provider,
		Amount:           f.Amount,
		RemainingBalance: f.RemainingBalance,
		SpentAmount:      f.SpentAmount(),
		ContractTerms:    f.ContractTerms,
		Status:           string(f.Status),
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
		Version:          f.Version,
	}
}
