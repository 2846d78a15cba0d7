package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizsuite/backend/internal/domain/production"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByIDForTenant finds a production batch by ID within a tenant.
// Returns (nil, nil) when no row exists; callers own the not-found decision.
func (r *GormBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.Batch, error) {
	var model models.BatchModel
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

// FindAllForTenant finds all production batches for a tenant matching the filter
func (r *GormBatchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) ([]production.Batch, error) {
	var batchModels []models.BatchModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BatchModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]production.Batch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = *model.ToDomain()
	}
	return batches, nil
}

// CountForTenant counts production batches for a tenant matching the filter
func (r *GormBatchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.BatchModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a production batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	model := models.BatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a production batch within a tenant
func (r *GormBatchRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BatchModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter production.BatchFilter) *gorm.DB {
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
		query = query.Order("started_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBatchRepository) applyFilterWithoutPagination(query *gorm.DB, filter production.BatchFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	return query
}

// Ensure GormBatchRepository implements BatchRepository
var _ production.BatchRepository = (*GormBatchRepository)(nil)
