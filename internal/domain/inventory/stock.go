package inventory

import (
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Stock is the on-hand quantity of one product in one warehouse
type Stock struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_tenant_wh_product,priority:2"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_tenant_wh_product,priority:3"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Stock) TableName() string {
	return "stocks"
}

// NewStock creates an empty stock row
func NewStock(tenantID, warehouseID, productID uuid.UUID) (*Stock, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &Stock{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		ProductID:           productID,
		Quantity:            decimal.Zero,
		UnitCost:            decimal.Zero,
	}, nil
}

// Increase adds quantity and recomputes the moving weighted average cost
func (s *Stock) Increase(quantity, unitCost decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	newQty := s.Quantity.Add(quantity)
	if s.Quantity.IsPositive() {
		total := s.Quantity.Mul(s.UnitCost).Add(quantity.Mul(unitCost))
		s.UnitCost = total.Div(newQty).Round(4)
	} else {
		s.UnitCost = unitCost
	}
	s.Quantity = newQty
	s.IncrementVersion()
	return nil
}

// Decrease removes quantity; the cost per unit is unchanged
func (s *Stock) Decrease(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity.GreaterThan(s.Quantity) {
		return shared.ErrInsufficientStock
	}
	s.Quantity = s.Quantity.Sub(quantity)
	s.IncrementVersion()
	return nil
}

// Apply posts a signed delta. Positive deltas use unitCost; zero cost falls back to the current average.
func (s *Stock) Apply(delta, unitCost decimal.Decimal) error {
	switch {
	case delta.IsPositive():
		if unitCost.IsZero() {
			unitCost = s.UnitCost
		}
		return s.Increase(delta, unitCost)
	case delta.IsNegative():
		return s.Decrease(delta.Neg())
	default:
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
}

// TotalValue returns quantity times unit cost
func (s *Stock) TotalValue() decimal.Decimal {
	return s.Quantity.Mul(s.UnitCost).Round(2)
}

// IsBelow reports whether the quantity is under the given threshold
func (s *Stock) IsBelow(threshold decimal.Decimal) bool {
	return s.Quantity.LessThan(threshold)
}
