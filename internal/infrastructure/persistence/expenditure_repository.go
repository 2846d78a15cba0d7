package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenditureRepository implements ExpenditureRepository using GORM
type GormExpenditureRepository struct {
	db *gorm.DB
}

// NewGormExpenditureRepository creates a new GormExpenditureRepository
func NewGormExpenditureRepository(db *gorm.DB) *GormExpenditureRepository {
	return &GormExpenditureRepository{db: db}
}

// FindByIDForTenant finds an expenditure by ID within a tenant.
// Returns (nil, nil) when no row exists; callers own the not-found decision.
func (r *GormExpenditureRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Expenditure, error) {
	var model models.ExpenditureModel
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

// FindAllForTenant finds all expenditures for a tenant matching the filter
func (r *GormExpenditureRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ExpenditureFilter) ([]ledger.Expenditure, error) {
	var expenditureModels []models.ExpenditureModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ExpenditureModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&expenditureModels).Error; err != nil {
		return nil, err
	}

	expenditures := make([]ledger.Expenditure, len(expenditureModels))
	for i, model := range expenditureModels {
		expenditures[i] = *model.ToDomain()
	}
	return expenditures, nil
}

// CountForTenant counts expenditures for a tenant matching the filter
func (r *GormExpenditureRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.ExpenditureFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ExpenditureModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByFundingSource counts expenditures attributed to a funding source
func (r *GormExpenditureRepository) CountByFundingSource(ctx context.Context, tenantID, fundingSourceID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenditureModel{}).
		Where("tenant_id = ? AND funding_source_id = ?", tenantID, fundingSourceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expenditure
func (r *GormExpenditureRepository) Save(ctx context.Context, expenditure *ledger.Expenditure) error {
	model := models.ExpenditureModelFromDomain(expenditure)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an expenditure within a tenant
func (r *GormExpenditureRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenditureModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormExpenditureRepository) applyFilter(query *gorm.DB, filter ledger.ExpenditureFilter) *gorm.DB {
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
		query = query.Order("spent_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormExpenditureRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.ExpenditureFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FundingSourceID != nil {
		query = query.Where("funding_source_id = ?", *filter.FundingSourceID)
	}
	if filter.FromDate != nil {
		query = query.Where("spent_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("spent_at <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormExpenditureRepository implements ExpenditureRepository
var _ ledger.ExpenditureRepository = (*GormExpenditureRepository)(nil)
