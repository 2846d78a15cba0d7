package scheduling

import (
	"context"
	"time"

	"github.com/bizsuite/backend/internal/domain/scheduling"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentService provides appointment CRUD and status transitions
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointmentRepo scheduling.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointmentRepo: appointmentRepo}
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	Service    string     `json:"service"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateAppointmentRequest represents a request to schedule an appointment
type CreateAppointmentRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	Service    string     `json:"service" binding:"required"`
	StartsAt   time.Time  `json:"starts_at" binding:"required"`
	EndsAt     *time.Time `json:"ends_at"`
	Notes      string     `json:"notes"`
}

// UpdateAppointmentRequest represents a request to reschedule or transition
// an appointment. Status may move to COMPLETED or CANCELLED.
type UpdateAppointmentRequest struct {
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Status   *string    `json:"status"`
	Notes    *string    `json:"notes"`
}

// AppointmentListFilter defines filtering options for appointment queries
type AppointmentListFilter struct {
	Status     string     `form:"status"`
	CustomerID *uuid.UUID `form:"customer_id"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreateAppointment schedules a new appointment
func (s *AppointmentService) CreateAppointment(ctx context.Context, tenantID uuid.UUID, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := scheduling.NewAppointment(tenantID, req.CustomerID, req.Service, req.StartsAt, req.EndsAt, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appointment), nil
}

// GetAppointmentByID gets an appointment by ID
func (s *AppointmentService) GetAppointmentByID(ctx context.Context, tenantID, id uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Appointment not found")
	}
	return toAppointmentResponse(appointment), nil
}

// ListAppointments lists appointments with filtering
func (s *AppointmentService) ListAppointments(ctx context.Context, tenantID uuid.UUID, filter AppointmentListFilter) ([]AppointmentResponse, int64, error) {
	domainFilter := scheduling.AppointmentFilter{
		CustomerID: filter.CustomerID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Status != "" {
		status := scheduling.AppointmentStatus(filter.Status)
		domainFilter.Status = &status
	}

	appointments, err := s.appointmentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.appointmentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *toAppointmentResponse(&appointments[i]))
	}
	return responses, total, nil
}

// UpdateAppointment reschedules an appointment or transitions its status
func (s *AppointmentService) UpdateAppointment(ctx context.Context, tenantID, id uuid.UUID, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Appointment not found")
	}

	if req.StartsAt != nil {
		if err := appointment.Reschedule(*req.StartsAt, req.EndsAt); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch scheduling.AppointmentStatus(*req.Status) {
		case scheduling.AppointmentStatusCompleted:
			if err := appointment.Complete(); err != nil {
				return nil, err
			}
		case scheduling.AppointmentStatusCancelled:
			if err := appointment.Cancel(); err != nil {
				return nil, err
			}
		case scheduling.AppointmentStatusScheduled:
			// No transition back to scheduled
			if appointment.Status != scheduling.AppointmentStatusScheduled {
				return nil, shared.NewDomainError("INVALID_STATE", "Appointment cannot return to scheduled")
			}
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Appointment status is not valid")
		}
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
		appointment.Touch()
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appointment), nil
}

// DeleteAppointment deletes an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, tenantID, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return shared.NewDomainError("NOT_FOUND", "Appointment not found")
	}
	return s.appointmentRepo.DeleteForTenant(ctx, tenantID, id)
}

func toAppointmentResponse(a *scheduling.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         a.ID,
		TenantID:   a.TenantID,
		CustomerID: a.CustomerID,
		Service:    a.Service,
		StartsAt:   a.StartsAt,
		EndsAt:     a.EndsAt,
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
