package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizsuite/backend/internal/domain/scheduling"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements AppointmentRepository using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByIDForTenant finds an appointment by ID within a tenant.
// Returns (nil, nil) when no row exists; callers own the not-found decision.
func (r *GormAppointmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*scheduling.Appointment, error) {
	var model models.AppointmentModel
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

// FindAllForTenant finds all appointments for a tenant matching the filter
func (r *GormAppointmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter scheduling.AppointmentFilter) ([]scheduling.Appointment, error) {
	var appointmentModels []models.AppointmentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.AppointmentModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&appointmentModels).Error; err != nil {
		return nil, err
	}

	appointments := make([]scheduling.Appointment, len(appointmentModels))
	for i, model := range appointmentModels {
		appointments[i] = *model.ToDomain()
	}
	return appointments, nil
}

// CountForTenant counts appointments for a tenant matching the filter
func (r *GormAppointmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter scheduling.AppointmentFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.AppointmentModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an appointment
func (r *GormAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	model := models.AppointmentModelFromDomain(appointment)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an appointment within a tenant
func (r *GormAppointmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AppointmentModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination
func (r *GormAppointmentRepository) applyFilter(query *gorm.DB, filter scheduling.AppointmentFilter) *gorm.DB {
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
		query = query.Order("starts_at ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAppointmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter scheduling.AppointmentFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("service ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.FromDate != nil {
		query = query.Where("starts_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("starts_at <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormAppointmentRepository implements AppointmentRepository
var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
