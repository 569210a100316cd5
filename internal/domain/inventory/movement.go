package inventory

import (
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock ledger row
type MovementType string

const (
	MovementTypeIn     MovementType = "IN"
	MovementTypeOut    MovementType = "OUT"
	MovementTypeAdjust MovementType = "ADJUST"
)

// IsValid checks the movement type
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust:
		return true
	}
	return false
}

// Reference types written on movements
const (
	ReferenceStockAdjustment = "STOCK_ADJUSTMENT"
	ReferencePurchaseOrder   = "PURCHASE_ORDER"
	ReferenceSalesOrder      = "SALES_ORDER"
)

// Reference points a movement back at the document that caused it
type Reference struct {
	Type string
	ID   uuid.UUID
}

// StockMovement is an append-only stock ledger row
type StockMovement struct {
	shared.BaseEntity
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          MovementType    `gorm:"type:varchar(10);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReferenceType string          `gorm:"type:varchar(30)"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid;index"`
	Note          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records a posted delta against the stock it changed
func NewStockMovement(stock *Stock, movementType MovementType, delta decimal.Decimal, ref Reference, note string) *StockMovement {
	m := &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      stock.TenantID,
		WarehouseID:   stock.WarehouseID,
		ProductID:     stock.ProductID,
		Type:          movementType,
		Quantity:      delta,
		BalanceAfter:  stock.Quantity,
		UnitCost:      stock.UnitCost,
		ReferenceType: ref.Type,
		Note:          note,
	}
	if ref.ID != uuid.Nil {
		id := ref.ID
		m.ReferenceID = &id
	}
	return m
}
