package inventory

import (
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLine is one signed quantity change to post
type StockLine struct {
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
	Delta       decimal.Decimal
	UnitCost    decimal.Decimal
}

// Posting groups the lines of one document posted atomically
type Posting struct {
	Type      MovementType
	Reference Reference
	Note      string
	Lines     []StockLine
}

// Validate checks that every line names a warehouse and product and moves a non-zero quantity
func (p Posting) Validate() error {
	if !p.Type.IsValid() {
		return shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN, OUT or ADJUST")
	}
	if len(p.Lines) == 0 {
		return shared.NewDomainError("EMPTY_POSTING", "Nothing to post")
	}
	for _, l := range p.Lines {
		if l.WarehouseID == uuid.Nil || l.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_LINE", "Warehouse and product are required")
		}
		if l.Delta.IsZero() {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
		}
		if p.Type == MovementTypeIn && l.Delta.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Inbound quantity must be positive")
		}
		if p.Type == MovementTypeOut && l.Delta.IsPositive() {
			return shared.NewDomainError("INVALID_QUANTITY", "Outbound quantity must be negative")
		}
	}
	return nil
}

// ApplyLine mutates stock with one line and returns the ledger row to persist
func (p Posting) ApplyLine(stock *Stock, line StockLine) (*StockMovement, error) {
	if err := stock.Apply(line.Delta, line.UnitCost); err != nil {
		return nil, err
	}
	return NewStockMovement(stock, p.Type, line.Delta, p.Reference, p.Note), nil
}
