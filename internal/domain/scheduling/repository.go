package scheduling

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentFilter defines filtering options for appointment list queries
type AppointmentFilter struct {
	shared.Filter
	Status     *AppointmentStatus
	CustomerID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

// AppointmentRepository defines persistence operations for appointments
type AppointmentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter AppointmentFilter) ([]Appointment, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter AppointmentFilter) (int64, error)
	Save(ctx context.Context, appointment *Appointment) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
