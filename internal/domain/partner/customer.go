package partner

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer represents a customer of the business
type Customer struct {
	shared.TenantAggregateRoot
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name, phone, email, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
		Email:               email,
		Address:             address,
	}, nil
}

// Update applies new contact details
func (c *Customer) Update(name, phone, email, address, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Notes = notes
	c.Touch()
	return nil
}
