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

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusDraft            SalesOrderStatus = "DRAFT"
	SalesOrderStatusConfirmed        SalesOrderStatus = "CONFIRMED"
	SalesOrderStatusPartialDelivered SalesOrderStatus = "PARTIAL_DELIVERED"
	SalesOrderStatusDelivered        SalesOrderStatus = "DELIVERED"
	SalesOrderStatusCancelled        SalesOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusDraft, SalesOrderStatusConfirmed, SalesOrderStatusPartialDelivered,
		SalesOrderStatusDelivered, SalesOrderStatusCancelled:
		return true
	}
	return false
}

// CanDeliver returns true if shipping is allowed in this status
func (s SalesOrderStatus) CanDeliver() bool {
	return s == SalesOrderStatusConfirmed || s == SalesOrderStatusPartialDelivered
}

// SalesOrderItem is a line of a sales order
type SalesOrderItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DeliveredQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate           decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// RemainingQuantity returns the quantity not yet delivered
func (i *SalesOrderItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.DeliveredQuantity)
}

// IsFullyDelivered reports whether nothing remains to deliver
func (i *SalesOrderItem) IsFullyDelivered() bool {
	return !i.RemainingQuantity().IsPositive()
}

// SalesOrder is an order placed by a customer
type SalesOrder struct {
	shared.TenantAggregateRoot
	Number       string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_tenant_number,priority:2"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	WarehouseID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderDate    time.Time        `gorm:"type:date;not null"`
	ExpectedDate *time.Time       `gorm:"type:date"`
	Status       SalesOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Items        []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Subtotal     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Total        decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Note         string           `gorm:"type:text"`
	ConfirmedAt  *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a draft sales order
func NewSalesOrder(tenantID uuid.UUID, number string, customerID, warehouseID uuid.UUID, orderDate time.Time) (*SalesOrder, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	o := &SalesOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Status:              SalesOrderStatusDraft,
		Subtotal:            decimal.Zero,
		TaxAmount:           decimal.Zero,
		Total:               decimal.Zero,
	}
	if err := o.setHeader(customerID, warehouseID, orderDate); err != nil {
		return nil, err
	}
	return o, nil
}

// Update changes the header of a draft order
func (o *SalesOrder) Update(customerID, warehouseID uuid.UUID, orderDate time.Time, expectedDate *time.Time, note string) error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	if err := o.setHeader(customerID, warehouseID, orderDate); err != nil {
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

func (o *SalesOrder) setHeader(customerID, warehouseID uuid.UUID, orderDate time.Time) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if orderDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Order date is required")
	}
	o.CustomerID = customerID
	o.WarehouseID = warehouseID
	o.OrderDate = orderDate
	return nil
}

// AddItem appends a line to a draft order
func (o *SalesOrder) AddItem(productID uuid.UUID, quantity, unitPrice, taxRate decimal.Decimal) error {
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
	o.Items = append(o.Items, SalesOrderItem{
		ID:                uuid.New(),
		OrderID:           o.ID,
		ProductID:         productID,
		Quantity:          quantity,
		DeliveredQuantity: decimal.Zero,
		UnitPrice:         unitPrice,
		TaxRate:           taxRate,
		Amount:            amount,
		TaxAmount:         tax,
	})
	o.recalculateTotals()
	o.IncrementVersion()
	return nil
}

// ClearItems removes every line from a draft order
func (o *SalesOrder) ClearItems() error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	o.Items = nil
	o.recalculateTotals()
	o.IncrementVersion()
	return nil
}

// Confirm moves a draft with items to CONFIRMED
func (o *SalesOrder) Confirm(at time.Time) error {
	if !o.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm order without items")
	}
	o.Status = SalesOrderStatusConfirmed
	o.ConfirmedAt = &at
	o.IncrementVersion()
	return nil
}

// Deliver records goods shipped. Every line is checked before anything changes;
// the order ends DELIVERED when all items are complete, PARTIAL_DELIVERED otherwise.
// The returned posting takes the goods out of the order's warehouse.
func (o *SalesOrder) Deliver(lines []FulfilLine, at time.Time) (inventory.Posting, error) {
	if !o.Status.CanDeliver() {
		return inventory.Posting{}, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver goods for order in %s status", o.Status))
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
		Type:      inventory.MovementTypeOut,
		Reference: inventory.Reference{Type: inventory.ReferenceSalesOrder, ID: o.ID},
		Note:      o.Number,
	}
	for _, productID := range order {
		item := o.itemByProduct(productID)
		item.DeliveredQuantity = item.DeliveredQuantity.Add(totals[productID])
		posting.Lines = append(posting.Lines, inventory.StockLine{
			WarehouseID: o.WarehouseID,
			ProductID:   productID,
			Delta:       totals[productID].Neg(),
		})
	}

	if o.allDelivered() {
		o.Status = SalesOrderStatusDelivered
		o.DeliveredAt = &at
	} else {
		o.Status = SalesOrderStatusPartialDelivered
	}
	o.IncrementVersion()
	return posting, nil
}

// Cancel is allowed from DRAFT or CONFIRMED while nothing was delivered
func (o *SalesOrder) Cancel(reason string, at time.Time) error {
	if o.Status != SalesOrderStatusDraft && o.Status != SalesOrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if o.hasDeliveredAny() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel order with delivered goods")
	}
	o.Status = SalesOrderStatusCancelled
	o.CancelledAt = &at
	o.CancelReason = strings.TrimSpace(reason)
	o.IncrementVersion()
	return nil
}

// IsDraft reports whether the order can still be edited
func (o *SalesOrder) IsDraft() bool {
	return o.Status == SalesOrderStatusDraft
}

// IsTerminal reports whether no further transitions are possible
func (o *SalesOrder) IsTerminal() bool {
	return o.Status == SalesOrderStatusDelivered || o.Status == SalesOrderStatusCancelled
}

// ProductIDs lists the distinct products on the order
func (o *SalesOrder) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (o *SalesOrder) itemByProduct(productID uuid.UUID) *SalesOrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

func (o *SalesOrder) allDelivered() bool {
	for i := range o.Items {
		if !o.Items[i].IsFullyDelivered() {
			return false
		}
	}
	return true
}

func (o *SalesOrder) hasDeliveredAny() bool {
	for _, item := range o.Items {
		if item.DeliveredQuantity.IsPositive() {
			return true
		}
	}
	return false
}

func (o *SalesOrder) recalculateTotals() {
	subtotal, tax := decimal.Zero, decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
		tax = tax.Add(item.TaxAmount)
	}
	o.Subtotal = subtotal
	o.TaxAmount = tax
	o.Total = subtotal.Add(tax)
}
