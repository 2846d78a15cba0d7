package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormFundingSourceRepository implements FundingSourceRepository using GORM
type GormFundingSourceRepository struct {
	db *gorm.DB
}

// NewGormFundingSourceRepository creates a new GormFundingSourceRepository
func NewGormFundingSourceRepository(db *gorm.DB) *GormFundingSourceRepository {
	return &GormFundingSourceRepository{db: db}
}

// FindByIDForTenant finds a funding source by ID within a tenant.
// Returns (nil, nil) when no row exists; callers own the not-found decision.
func (r *GormFundingSourceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*funding.FundingSource, error) {
	var model models.FundingSourceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all funding sources for a tenant matching the filter
func (r *GormFundingSourceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter funding.SourceFilter) ([]funding.FundingSource, error) {
	var sourceModels []models.FundingSourceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FundingSourceModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&sourceModels).Error; err != nil {
		return nil, err
	}

	sources := make([]funding.FundingSource, len(sourceModels))
	for i, model := range sourceModels {
		sources[i] = *model.ToDomain()
	}
	return sources, nil
}

// CountForTenant counts funding sources for a tenant matching the filter
func (r *GormFundingSourceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter funding.SourceFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.FundingSourceModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a funding source
func (r *GormFundingSourceRepository) Save(ctx context.Context, source *funding.FundingSource) error {
	model := models.FundingSourceModelFromDomain(source)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a funding source within a tenant
func (r *GormFundingSourceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FundingSourceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddToBalance credits amount to the remaining balance in a single statement.
func (r *GormFundingSourceRepository) AddToBalance(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.FundingSourceModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("remaining_balance", gorm.Expr("remaining_balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SubtractFromBalance debits amount from the remaining balance. The balance
// guard lives in the WHERE clause so two concurrent debits cannot both pass a
// stale check; a zero-row result is disambiguated with a follow-up read.
func (r *GormFundingSourceRepository) SubtractFromBalance(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.FundingSourceModel{}).
		Where("tenant_id = ? AND id = ? AND remaining_balance >= ?", tenantID, id, amount).
		Update("remaining_balance", gorm.Expr("remaining_balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.FundingSourceModel{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientBalance
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormFundingSourceRepository) applyFilter(query *gorm.DB, filter funding.SourceFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFundingSourceRepository) applyFilterWithoutPagination(query *gorm.DB, filter funding.SourceFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR provider ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// Ensure GormFundingSourceRepository implements FundingSourceRepository
var _ funding.FundingSourceRepository = (*GormFundingSourceRepository)(nil)
