package scheduling

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid AppointmentStatus
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents a scheduled customer appointment
type Appointment struct {
	shared.TenantAggregateRoot
	CustomerID uuid.UUID         `json:"customer_id"`
	Service    string            `json:"service"`
	StartsAt   time.Time         `json:"starts_at"`
	EndsAt     *time.Time        `json:"ends_at"`
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes"`
}

// NewAppointment creates a new scheduled appointment
func NewAppointment(tenantID, customerID uuid.UUID, service string, startsAt time.Time, endsAt *time.Time, notes string) (*Appointment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if service == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service cannot be empty")
	}
	if startsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_TIME", "Start time is required")
	}
	if endsAt != nil && !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_TIME", "End time must be after start time")
	}

	return &Appointment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		Service:             service,
		StartsAt:            startsAt,
		EndsAt:              endsAt,
		Status:              AppointmentStatusScheduled,
		Notes:               notes,
	}, nil
}

// Reschedule moves the appointment to a new time window
func (a *Appointment) Reschedule(startsAt time.Time, endsAt *time.Time) error {
	if a.Status != AppointmentStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled appointments can be rescheduled")
	}
	if startsAt.IsZero() {
		return shared.NewDomainError("INVALID_TIME", "Start time is required")
	}
	if endsAt != nil && !endsAt.After(startsAt) {
		return shared.NewDomainError("INVALID_TIME", "End time must be after start time")
	}
	a.StartsAt = startsAt
	a.EndsAt = endsAt
	a.Touch()
	return nil
}

// Complete marks the appointment as completed
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled appointments can be completed")
	}
	a.Status = AppointmentStatusCompleted
	a.Touch()
	return nil
}

// Cancel marks the appointment as cancelled
func (a *Appointment) Cancel() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only scheduled appointments can be cancelled")
	}
	a.Status = AppointmentStatusCancelled
	a.Touch()
	return nil
}
