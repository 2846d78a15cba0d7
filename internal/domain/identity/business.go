package identity

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Business represents a tenant: a single small business whose records are
// partitioned by its ID. OpeningBalance tracks the total opening capital
// injected via OPENING_BALANCE funding sources, independent of later
// expenditures against that capital.
type Business struct {
	shared.BaseAggregateRoot
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// NewBusiness creates a new business tenant
func NewBusiness(name, phone, address string) (*Business, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	return &Business{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		OpeningBalance:    decimal.Zero,
	}, nil
}

// AdjustOpeningBalance shifts the opening-balance aggregate by delta.
// Positive deltas record injected capital, negative deltas record removal of
// an opening-balance funding source or a downward amount correction.
func (b *Business) AdjustOpeningBalance(delta decimal.Decimal) {
	b.OpeningBalance = b.OpeningBalance.Add(delta)
	b.Touch()
}
