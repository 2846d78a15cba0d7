package partner

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier represents a goods or materials supplier
type Supplier struct {
	shared.TenantAggregateRoot
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, name, contactPerson, phone, email, address string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		ContactPerson:       contactPerson,
		Phone:               phone,
		Email:               email,
		Address:             address,
	}, nil
}

// Update applies new contact details
func (s *Supplier) Update(name, contactPerson, phone, email, address, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.Notes = notes
	s.Touch()
	return nil
}
