package persistence

import (
	"context"
	"errors"

	"github.com/bizsuite/backend/internal/domain/identity"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessRepository implements BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by its ID.
// Returns (nil, nil) when no row exists; callers own the not-found decision.
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	model := models.BusinessModelFromDomain(business)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormBusinessRepository implements BusinessRepository
var _ identity.BusinessRepository = (*GormBusinessRepository)(nil)
