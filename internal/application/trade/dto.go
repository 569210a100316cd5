package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one order line. UnitPrice defaults to the product price
// and TaxRate to the rate of the product's tax.
type OrderItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"decimal_gte0" swaggertype:"string" example:"10"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"omitempty,decimal_gte0" swaggertype:"string" example:"45000"`
	TaxRate   *decimal.Decimal `json:"tax_rate" binding:"omitempty,decimal_gte0" swaggertype:"string" example:"11"`
}

// FulfilLineRequest is a quantity received or delivered for one product
type FulfilLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"decimal_gte0" swaggertype:"string" example:"5"`
}

// FulfilRequest carries the lines of a receipt or delivery
type FulfilRequest struct {
	Lines []FulfilLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r FulfilRequest) toLines() []trade.FulfilLine {
	lines := make([]trade.FulfilLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = trade.FulfilLine{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return lines
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500" example:"Vendor out of stock"`
}

// OrderItemResponse represents an order line in API responses. Fulfilled is
// the received quantity for purchase orders and the delivered one for sales orders.
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string"`
	Fulfilled decimal.Decimal `json:"fulfilled_quantity" swaggertype:"string"`
	Remaining decimal.Decimal `json:"remaining_quantity" swaggertype:"string"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string"`
	TaxRate   decimal.Decimal `json:"tax_rate" swaggertype:"string"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	TaxAmount decimal.Decimal `json:"tax_amount" swaggertype:"string"`
}

// CreatePurchaseOrderRequest represents a request to create a draft purchase order.
// The tenant's default warehouse is used when WarehouseID is empty.
type CreatePurchaseOrderRequest struct {
	VendorID     uuid.UUID          `json:"vendor_id" binding:"required"`
	WarehouseID  *uuid.UUID         `json:"warehouse_id"`
	OrderDate    *time.Time         `json:"order_date"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Note         string             `json:"note" binding:"max=2000"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest replaces the header and items of a draft purchase order
type UpdatePurchaseOrderRequest struct {
	VendorID     uuid.UUID          `json:"vendor_id" binding:"required"`
	WarehouseID  uuid.UUID          `json:"warehouse_id" binding:"required"`
	OrderDate    time.Time          `json:"order_date" binding:"required"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Note         string             `json:"note" binding:"max=2000"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Number          string              `json:"number"`
	VendorID        uuid.UUID           `json:"vendor_id"`
	WarehouseID     uuid.UUID           `json:"warehouse_id"`
	OrderDate       time.Time           `json:"order_date"`
	ExpectedDate    *time.Time          `json:"expected_date,omitempty"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal" swaggertype:"string"`
	TaxAmount       decimal.Decimal     `json:"tax_amount" swaggertype:"string"`
	Total           decimal.Decimal     `json:"total" swaggertype:"string"`
	ReceiveProgress decimal.Decimal     `json:"receive_progress" swaggertype:"string"`
	Note            string              `json:"note,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ReceivedAt      *time.Time          `json:"received_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// PurchaseOrderListFilter represents filter options for the purchase order list
type PurchaseOrderListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED PARTIAL_RECEIVED RECEIVED CANCELLED"`
	VendorID    *uuid.UUID `form:"vendor_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f PurchaseOrderListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("status", f.Status).
		With("vendor_id", f.VendorID).
		With("warehouse_id", f.WarehouseID).
		With("from", f.From).
		With("to", f.To)
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder to PurchaseOrderResponse
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Fulfilled: item.ReceivedQuantity,
			Remaining: item.RemainingQuantity(),
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			Amount:    item.Amount,
			TaxAmount: item.TaxAmount,
		}
	}
	return PurchaseOrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		VendorID:        o.VendorID,
		WarehouseID:     o.WarehouseID,
		OrderDate:       o.OrderDate,
		ExpectedDate:    o.ExpectedDate,
		Status:          string(o.Status),
		Items:           items,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		Total:           o.Total,
		ReceiveProgress: o.ReceiveProgress(),
		Note:            o.Note,
		ConfirmedAt:     o.ConfirmedAt,
		ReceivedAt:      o.ReceivedAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// CreateSalesOrderRequest represents a request to create a draft sales order.
// The tenant's default warehouse is used when WarehouseID is empty.
type CreateSalesOrderRequest struct {
	CustomerID   uuid.UUID          `json:"customer_id" binding:"required"`
	WarehouseID  *uuid.UUID         `json:"warehouse_id"`
	OrderDate    *time.Time         `json:"order_date"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Note         string             `json:"note" binding:"max=2000"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSalesOrderRequest replaces the header and items of a draft sales order
type UpdateSalesOrderRequest struct {
	CustomerID   uuid.UUID          `json:"customer_id" binding:"required"`
	WarehouseID  uuid.UUID          `json:"warehouse_id" binding:"required"`
	OrderDate    time.Time          `json:"order_date" binding:"required"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Note         string             `json:"note" binding:"max=2000"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	Number       string              `json:"number"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	WarehouseID  uuid.UUID           `json:"warehouse_id"`
	OrderDate    time.Time           `json:"order_date"`
	ExpectedDate *time.Time          `json:"expected_date,omitempty"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	Subtotal     decimal.Decimal     `json:"subtotal" swaggertype:"string"`
	TaxAmount    decimal.Decimal     `json:"tax_amount" swaggertype:"string"`
	Total        decimal.Decimal     `json:"total" swaggertype:"string"`
	Note         string              `json:"note,omitempty"`
	ConfirmedAt  *time.Time          `json:"confirmed_at,omitempty"`
	DeliveredAt  *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// SalesOrderListFilter represents filter options for the sales order list
type SalesOrderListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED PARTIAL_DELIVERED DELIVERED CANCELLED"`
	CustomerID  *uuid.UUID `form:"customer_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f SalesOrderListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("status", f.Status).
		With("customer_id", f.CustomerID).
		With("warehouse_id", f.WarehouseID).
		With("from", f.From).
		With("to", f.To)
}

// ToSalesOrderResponse converts a domain SalesOrder to SalesOrderResponse
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Fulfilled: item.DeliveredQuantity,
			Remaining: item.RemainingQuantity(),
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			Amount:    item.Amount,
			TaxAmount: item.TaxAmount,
		}
	}
	return SalesOrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		CustomerID:   o.CustomerID,
		WarehouseID:  o.WarehouseID,
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		Status:       string(o.Status),
		Items:        items,
		Subtotal:     o.Subtotal,
		TaxAmount:    o.TaxAmount,
		Total:        o.Total,
		Note:         o.Note,
		ConfirmedAt:  o.ConfirmedAt,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}
