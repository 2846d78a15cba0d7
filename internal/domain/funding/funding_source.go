package funding

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceType represents the kind of capital inflow a funding source records
type SourceType string

const (
	SourceTypeGrant             SourceType = "GRANT"
	SourceTypeLoan              SourceType = "LOAN"
	SourceTypeOpeningBalance    SourceType = "OPENING_BALANCE"
	SourceTypeOwnerContribution SourceType = "OWNER_CONTRIBUTION"
	SourceTypeOther             SourceType = "OTHER"
)

// IsValid checks if the type is a valid SourceType
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeGrant, SourceTypeLoan, SourceTypeOpeningBalance,
		SourceTypeOwnerContribution, SourceTypeOther:
		return true
	}
	return false
}

// String returns the string representation of SourceType
func (t SourceType) String() string {
	return string(t)
}

// SourceStatus represents the lifecycle status of a funding source
type SourceStatus string

const (
	SourceStatusActive SourceStatus = "ACTIVE"
	SourceStatusClosed SourceStatus = "CLOSED"
)

// IsValid checks if the status is a valid SourceStatus
func (s SourceStatus) IsValid() bool {
	return s == SourceStatusActive || s == SourceStatusClosed
}

// FundingSource represents a capital inflow aggregate root.
// Amount is the nominal size of the source and is only edited by an explicit
// update. RemainingBalance is the derived draw-down balance mutated solely by
// the balance engine; the invariant RemainingBalance >= 0 always holds, and
// RemainingBalance == Amount - sum(attributed expenditures) after any
// successful reconciliation.
type FundingSource struct {
	shared.TenantAggregateRoot
	Type             SourceType      `json:"type"`
	Name             string          `json:"name"`
	Provider         string          `json:"provider"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	ContractTerms    string          `json:"contract_terms"`
	Status           SourceStatus    `json:"status"`
	StartDate        *time.Time      `json:"start_date"`
	EndDate          *time.Time      `json:"end_date"`
}

// NewFundingSource creates a new funding source with a full remaining balance
func NewFundingSource(
	tenantID uuid.UUID,
	sourceType SourceType,
	name string,
	provider string,
	amount valueobject.Money,
) (*FundingSource, error) {
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Funding source type is not valid")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Funding source name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Funding source name cannot exceed 200 characters")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	return &FundingSource{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                sourceType,
		Name:                name,
		Provider:            provider,
		Amount:              amount.Amount(),
		RemainingBalance:    amount.Amount(),
		Status:              SourceStatusActive,
	}, nil
}

// IsOpeningBalance returns true for sources that mirror into the business
// opening-balance aggregate
func (f *FundingSource) IsOpeningBalance() bool {
	return f.Type == SourceTypeOpeningBalance
}

// SpentAmount returns the total already attributed to expenditures
func (f *FundingSource) SpentAmount() decimal.Decimal {
	return f.Amount.Sub(f.RemainingBalance)
}

// UpdateDetails updates descriptive fields
func (f *FundingSource) UpdateDetails(name, provider, contractTerms string, startDate, endDate *time.Time) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Funding source name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Funding source name cannot exceed 200 characters")
	}

	f.Name = name
	f.Provider = provider
	f.ContractTerms = contractTerms
	f.StartDate = startDate
	f.EndDate = endDate
	f.Touch()

	return nil
}

// ChangeAmount sets a new nominal amount and shifts the remaining balance by
// the same delta, keeping the spent amount untouched. Returns the delta
// (new - old) so the caller can propagate opening-balance changes.
// Rejects a reduction that would drive the remaining balance negative.
func (f *FundingSource) ChangeAmount(newAmount valueobject.Money) (decimal.Decimal, error) {
	if newAmount.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	delta := newAmount.Amount().Sub(f.Amount)
	newBalance := f.RemainingBalance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT",
			"New amount is below the total already spent against this source")
	}

	f.Amount = newAmount.Amount()
	f.RemainingBalance = newBalance
	f.Touch()

	return delta, nil
}

// Close marks the funding source as closed
func (f *FundingSource) Close() error {
	if f.Status == SourceStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Funding source is already closed")
	}
	f.Status = SourceStatusClosed
	f.Touch()
	return nil
}
