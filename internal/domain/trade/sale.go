package trade

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodMobileMoney:
		return true
	}
	return false
}

// SaleItem is a single line of a sale
type SaleItem struct {
	shared.BaseEntity
	SaleID    uuid.UUID       `json:"sale_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Sale represents a completed point-of-sale transaction. Each sale is
// mirrored by one SALE ledger transaction written in the same database
// transaction as the sale itself.
type Sale struct {
	shared.TenantAggregateRoot
	CustomerID    *uuid.UUID      `json:"customer_id"`
	Items         []SaleItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	SoldAt        time.Time       `json:"sold_at"`
	Notes         string          `json:"notes"`
}

// NewSale creates a sale from its lines, deriving line and grand totals
func NewSale(tenantID uuid.UUID, customerID *uuid.UUID, method PaymentMethod, lines []SaleLine, notes string) (*Sale, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "A sale requires at least one item")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		PaymentMethod:       method,
		SoldAt:              time.Now(),
		Notes:               notes,
		TotalAmount:         decimal.Zero,
	}

	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Sale item product ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Sale item quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Sale item price cannot be negative")
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		sale.Items = append(sale.Items, SaleItem{
			BaseEntity: shared.NewBaseEntity(),
			SaleID:     sale.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			LineTotal:  lineTotal,
		})
		sale.TotalAmount = sale.TotalAmount.Add(lineTotal)
	}

	return sale, nil
}

// SaleLine is the input shape for one sale item
type SaleLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}
