package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdjustmentStatus is the lifecycle state of a stock adjustment
type AdjustmentStatus string

const (
	AdjustmentStatusDraft     AdjustmentStatus = "DRAFT"
	AdjustmentStatusPosted    AdjustmentStatus = "POSTED"
	AdjustmentStatusCancelled AdjustmentStatus = "CANCELLED"
)

// StockAdjustment corrects stock levels in one warehouse
type StockAdjustment struct {
	shared.TenantAggregateRoot
	Number      string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_adjustment_tenant_number,priority:2"`
	WarehouseID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Reason      string                `gorm:"type:varchar(500)"`
	Status      AdjustmentStatus      `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PostedAt    *time.Time            `gorm:"type:timestamptz"`
	Items       []StockAdjustmentItem `gorm:"foreignKey:AdjustmentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// StockAdjustmentItem is a signed quantity change for one product
type StockAdjustmentItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AdjustmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockAdjustmentItem) TableName() string {
	return "stock_adjustment_items"
}

// NewStockAdjustment creates a draft adjustment
func NewStockAdjustment(tenantID uuid.UUID, number string, warehouseID uuid.UUID, reason string) (*StockAdjustment, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Adjustment number cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	return &StockAdjustment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		WarehouseID:         warehouseID,
		Reason:              strings.TrimSpace(reason),
		Status:              AdjustmentStatusDraft,
	}, nil
}

// AddItem appends a line; one line per product
func (a *StockAdjustment) AddItem(productID uuid.UUID, quantity, unitCost decimal.Decimal) error {
	if !a.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be edited")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	for _, item := range a.Items {
		if item.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Product already listed in adjustment")
		}
	}
	a.Items = append(a.Items, StockAdjustmentItem{
		ID:           uuid.New(),
		AdjustmentID: a.ID,
		ProductID:    productID,
		Quantity:     quantity,
		UnitCost:     unitCost,
	})
	a.IncrementVersion()
	return nil
}

// ClearItems removes all lines from a draft
func (a *StockAdjustment) ClearItems() error {
	if !a.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be edited")
	}
	a.Items = nil
	a.IncrementVersion()
	return nil
}

// Update changes warehouse and reason of a draft
func (a *StockAdjustment) Update(warehouseID uuid.UUID, reason string) error {
	if !a.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be edited")
	}
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	a.WarehouseID = warehouseID
	a.Reason = strings.TrimSpace(reason)
	a.IncrementVersion()
	return nil
}

// Post marks the adjustment as posted and returns the stock posting to apply
func (a *StockAdjustment) Post(at time.Time) (Posting, error) {
	if !a.IsDraft() {
		return Posting{}, shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be posted")
	}
	if len(a.Items) == 0 {
		return Posting{}, shared.NewDomainError("EMPTY_ADJUSTMENT", "Adjustment has no items")
	}
	a.Status = AdjustmentStatusPosted
	a.PostedAt = &at
	a.IncrementVersion()
	return a.posting(), nil
}

// Cancel voids a draft
func (a *StockAdjustment) Cancel() error {
	if !a.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be cancelled")
	}
	a.Status = AdjustmentStatusCancelled
	a.IncrementVersion()
	return nil
}

// IsDraft reports whether the adjustment is still editable
func (a *StockAdjustment) IsDraft() bool {
	return a.Status == AdjustmentStatusDraft
}

func (a *StockAdjustment) posting() Posting {
	lines := make([]StockLine, 0, len(a.Items))
	for _, item := range a.Items {
		lines = append(lines, StockLine{
			WarehouseID: a.WarehouseID,
			ProductID:   item.ProductID,
			Delta:       item.Quantity,
			UnitCost:    item.UnitCost,
		})
	}
	return Posting{
		Type:      MovementTypeAdjust,
		Reference: Reference{Type: ReferenceStockAdjustment, ID: a.ID},
		Note:      a.Reason,
		Lines:     lines,
	}
}
