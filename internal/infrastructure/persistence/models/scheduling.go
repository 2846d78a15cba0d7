package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/scheduling"
	"github.com/google/uuid"
)

// AppointmentModel is the persistence model for the Appointment domain entity.
type AppointmentModel struct {
	TenantAggregateModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Service    string    `gorm:"type:varchar(200);not null"`
	StartsAt   time.Time `gorm:"not null;index"`
	EndsAt     *time.Time
	Status scheduling.AppointmentStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index"`
	Notes  string                       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts the persistence model to a domain Appointment entity.
func (m *AppointmentModel) ToDomain() *scheduling.Appointment {
	appointment := &scheduling.Appointment{
		CustomerID: m.CustomerID,
		Service:    m.Service,
		StartsAt:   m.StartsAt,
		EndsAt:     m.EndsAt,
		Status:     m.Status,
		Notes:      m.Notes,
	}
	m.PopulateTenantAggregateRoot(&appointment.TenantAggregateRoot)
	return appointment
}

// FromDomain populates the persistence model from a domain Appointment entity.
func (m *AppointmentModel) FromDomain(a *scheduling.Appointment) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.CustomerID = a.CustomerID
	m.Service = a.Service
	m.StartsAt = a.StartsAt
	m.EndsAt = a.EndsAt
	m.Status = a.Status
	m.Notes = a.Notes
}

// AppointmentModelFromDomain creates a new persistence model from a domain Appointment entity.
func AppointmentModelFromDomain(a *scheduling.Appointment) *AppointmentModel {
	m := &AppointmentModel{}
	m.FromDomain(a)
	return m
}
