package trade

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FulfilLine is a quantity of a product received or delivered against an order
type FulfilLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// lineAmounts returns the net amount and the tax of an order line
func lineAmounts(quantity, unitPrice, taxRate decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	amount := quantity.Mul(unitPrice).Round(2)
	return amount, amount.Mul(taxRate).Div(hundred).Round(2)
}

func validateLine(productID uuid.UUID, quantity, unitPrice, taxRate decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	return nil
}

// sumLines merges lines per product, rejecting non-positive quantities
func sumLines(lines []FulfilLine) (map[uuid.UUID]decimal.Decimal, []uuid.UUID, error) {
	if len(lines) == 0 {
		return nil, nil, shared.NewDomainError("NO_ITEMS", "At least one line is required")
	}
	totals := make(map[uuid.UUID]decimal.Decimal, len(lines))
	order := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Quantity for product %s must be positive", l.ProductID))
		}
		if _, ok := totals[l.ProductID]; !ok {
			order = append(order, l.ProductID)
		}
		totals[l.ProductID] = totals[l.ProductID].Add(l.Quantity)
	}
	return totals, order, nil
}

func exceedsRemaining(productID uuid.UUID, quantity, remaining decimal.Decimal) error {
	if quantity.GreaterThan(remaining) {
		return shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Quantity %s for product %s exceeds remaining %s", quantity, productID, remaining))
	}
	return nil
}
