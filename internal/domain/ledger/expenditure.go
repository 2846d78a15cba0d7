package ledger

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenditureCategory represents the category of an expenditure
type ExpenditureCategory string

const (
	ExpenditureCategoryRent      ExpenditureCategory = "RENT"
	ExpenditureCategoryUtilities ExpenditureCategory = "UTILITIES"
	ExpenditureCategorySalary    ExpenditureCategory = "SALARY"
	ExpenditureCategorySupplies  ExpenditureCategory = "SUPPLIES"
	ExpenditureCategoryTransport ExpenditureCategory = "TRANSPORT"
	ExpenditureCategoryMarketing ExpenditureCategory = "MARKETING"
	ExpenditureCategoryEquipment ExpenditureCategory = "EQUIPMENT"
	ExpenditureCategoryOther     ExpenditureCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenditureCategory
func (c ExpenditureCategory) IsValid() bool {
	switch c {
	case ExpenditureCategoryRent, ExpenditureCategoryUtilities, ExpenditureCategorySalary,
		ExpenditureCategorySupplies, ExpenditureCategoryTransport, ExpenditureCategoryMarketing,
		ExpenditureCategoryEquipment, ExpenditureCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenditureCategory
func (c ExpenditureCategory) String() string {
	return string(c)
}

// Expenditure represents a recorded outflow of money, optionally attributed
// to a funding source and always mirrored by exactly one ledger transaction.
type Expenditure struct {
	shared.TenantAggregateRoot
	Amount          decimal.Decimal     `json:"amount"`
	Category        ExpenditureCategory `json:"category"`
	Description     string              `json:"description"`
	SpentAt         time.Time           `json:"spent_at"`
	FundingSourceID *uuid.UUID          `json:"funding_source_id"`
}

// NewExpenditure creates a new expenditure record
func NewExpenditure(
	tenantID uuid.UUID,
	amount valueobject.Money,
	category ExpenditureCategory,
	description string,
	spentAt time.Time,
	fundingSourceID *uuid.UUID,
) (*Expenditure, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expenditure category is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	return &Expenditure{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Amount:              amount.Amount(),
		Category:            category,
		Description:         description,
		SpentAt:             spentAt,
		FundingSourceID:     fundingSourceID,
	}, nil
}

// Update applies new values to the expenditure
func (e *Expenditure) Update(
	amount valueobject.Money,
	category ExpenditureCategory,
	description string,
	spentAt time.Time,
	fundingSourceID *uuid.UUID,
) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expenditure category is not valid")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	e.Amount = amount.Amount()
	e.Category = category
	e.Description = description
	if !spentAt.IsZero() {
		e.SpentAt = spentAt
	}
	e.FundingSourceID = fundingSourceID
	e.Touch()

	return nil
}

// HasFundingSource returns true if the expenditure draws down a funding source
func (e *Expenditure) HasFundingSource() bool {
	return e.FundingSourceID != nil
}
