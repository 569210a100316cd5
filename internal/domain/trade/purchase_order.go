package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft           PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed       PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusPartialReceived PurchaseOrderStatus = "PARTIAL_RECEIVED"
	PurchaseOrderStatusReceived        PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled       PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed, PurchaseOrderStatusPartialReceived,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusConfirmed || s == PurchaseOrderStatusPartialReceived
}

// PurchaseOrderItem is a line of a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate          decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// RemainingQuantity returns the quantity not yet received
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// IsFullyReceived reports whether nothing remains to receive
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return !i.RemainingQuantity().IsPositive()
}

// PurchaseOrder is an order placed with a vendor
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number       string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_order_tenant_number,priority:2"`
	VendorID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	WarehouseID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	OrderDate    time.Time           `gorm:"type:date;not null"`
	ExpectedDate *time.Time          `gorm:"type:date"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Items        []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Subtotal     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Total        decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Note         string              `gorm:"type:text"`
	ConfirmedAt  *time.Time
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(tenantID uuid.UUID, number string, vendorID, warehouseID uuid.UUID, orderDate time.Time) (*PurchaseOrder, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	o := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Status:              PurchaseOrderStatusDraft,
		Subtotal:            decimal.Zero,
		TaxAmount:           decimal.Zero,
		Total:               decimal.Zero,
	}
	if err := o.setHeader(vendorID, warehouseID, orderDate); err != nil {
		return nil, err
	}
	return o, nil
}

// Update changes the header of a draft order
func (o *PurchaseOrder) Update(vendorID, warehouseID uuid.UUID, orderDate time.Time, expectedDate *time.Time, note string) error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	if err := o.setHeader(vendorID, warehouseID, orderDate); err != nil {
		return err
	}
	if expectedDate != nil && expectedDate.Before(o.OrderDate) {
		return shared.NewDomainError("INVALID_DATE", "Expected date cannot be before order date")
	}
	o.ExpectedDate = expectedDate
	o.Note = note
	o.IncrementVersion()
	return nil
}

func (o *PurchaseOrder) setHeader(vendorID, warehouseID uuid.UUID, orderDate time.Time) error {
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if orderDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Order date is required")
	}
	o.VendorID = vendorID
	o.WarehouseID = warehouseID
	o.OrderDate = orderDate
	return nil
}

// AddItem appends a line to a draft order
func (o *PurchaseOrder) AddItem(productID uuid.UUID, quantity, unitPrice, taxRate decimal.Decimal) error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	if err := validateLine(productID, quantity, unitPrice, taxRate); err != nil {
		return err
	}
	for _, item := range o.Items {
		if item.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Product already exists in order")
		}
	}
	amount, tax := lineAmounts(quantity, unitPrice, taxRate)
	o.Items = append(o.Items, PurchaseOrderItem{
		ID:               uuid.New(),
		OrderID:          o.ID,
		ProductID:        productID,
		Quantity:         quantity,
		ReceivedQuantity: decimal.Zero,
		UnitPrice:        unitPrice,
		TaxRate:          taxRate,
		Amount:           amount,
		TaxAmount:        tax,
	})
	o.recalculateTotals()
	o.IncrementVersion()
	return nil
}

// ClearItems removes every line from a draft order
func (o *PurchaseOrder) ClearItems() error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	o.Items = nil
	o.recalculateTotals()
	o.IncrementVersion()
	return nil
}

// Confirm moves a draft with items to CONFIRMED
func (o *PurchaseOrder) Confirm(at time.Time) error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm order without items")
	}
	o.Status = PurchaseOrderStatusConfirmed
	o.ConfirmedAt = &at
	o.IncrementVersion()
	return nil
}

// Receive records goods received. Every line is checked before anything changes;
// the order ends RECEIVED when all items are complete, PARTIAL_RECEIVED otherwise.
// The returned posting brings the goods into the order's warehouse at the order price.
func (o *PurchaseOrder) Receive(lines []FulfilLine, at time.Time) (inventory.Posting, error) {
	if !o.Status.CanReceive() {
		return inventory.Posting{}, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}
	totals, order, err := sumLines(lines)
	if err != nil {
		return inventory.Posting{}, err
	}
	for _, productID := range order {
		item := o.itemByProduct(productID)
		if item == nil {
			return inventory.Posting{}, shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Product %s not found in order", productID))
		}
		if err := exceedsRemaining(productID, totals[productID], item.RemainingQuantity()); err != nil {
			return inventory.Posting{}, err
		}
	}

	posting := inventory.Posting{
		Type:      inventory.MovementTypeIn,
		Reference: inventory.Reference{Type: inventory.ReferencePurchaseOrder, ID: o.ID},
		Note:      o.Number,
	}
	for _, productID := range order {
		item := o.itemByProduct(productID)
		item.ReceivedQuantity = item.ReceivedQuantity.Add(totals[productID])
		posting.Lines = append(posting.Lines, inventory.StockLine{
			WarehouseID: o.WarehouseID,
			ProductID:   productID,
			Delta:       totals[productID],
			UnitCost:    item.UnitPrice,
		})
	}

	if o.allReceived() {
		o.Status = PurchaseOrderStatusReceived
		o.ReceivedAt = &at
	} else {
		o.Status = PurchaseOrderStatusPartialReceived
	}
	o.IncrementVersion()
	return posting, nil
}

// Cancel is allowed from DRAFT or CONFIRMED while nothing was received
func (o *PurchaseOrder) Cancel(reason string, at time.Time) error {
	if o.Status != PurchaseOrderStatusDraft && o.Status != PurchaseOrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if o.hasReceivedAny() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel order with received goods")
	}
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &at
	o.CancelReason = strings.TrimSpace(reason)
	o.IncrementVersion()
	return nil
}

// IsDraft reports whether the order can still be edited
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// IsTerminal reports whether no further transitions are possible
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == PurchaseOrderStatusReceived || o.Status == PurchaseOrderStatusCancelled
}

// ReceiveProgress returns received / ordered quantity as a percentage
func (o *PurchaseOrder) ReceiveProgress() decimal.Decimal {
	ordered, received := decimal.Zero, decimal.Zero
	for _, item := range o.Items {
		ordered = ordered.Add(item.Quantity)
		received = received.Add(item.ReceivedQuantity)
	}
	if ordered.IsZero() {
		return decimal.Zero
	}
	return received.Div(ordered).Mul(hundred).Round(2)
}

func (o *PurchaseOrder) itemByProduct(productID uuid.UUID) *PurchaseOrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

func (o *PurchaseOrder) allReceived() bool {
	for i := range o.Items {
		if !o.Items[i].IsFullyReceived() {
			return false
		}
	}
	return true
}

func (o *PurchaseOrder) hasReceivedAny() bool {
	for _, item := range o.Items {
		if item.ReceivedQuantity.IsPositive() {
			return true
		}
	}
	return false
}

func (o *PurchaseOrder) recalculateTotals() {
	subtotal, tax := decimal.Zero, decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
		tax = tax.Add(item.TaxAmount)
	}
	o.Subtotal = subtotal
	o.TaxAmount = tax
	o.Total = subtotal.Add(tax)
}
