package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockResponse represents a stock row in API responses
type StockResponse struct {
	ID          uuid.UUID       `json:"id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitCost    decimal.Decimal `json:"unit_cost" swaggertype:"string"`
	TotalValue  decimal.Decimal `json:"total_value" swaggertype:"string"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// StockListFilter represents filter options for the stock list
type StockListFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	ProductID   *uuid.UUID `form:"product_id"`
	LowStock    *bool      `form:"low_stock"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f StockListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, "").
		With("warehouse_id", f.WarehouseID).
		With("product_id", f.ProductID).
		With("low_stock", f.LowStock)
}

// ToStockResponse converts a domain Stock to StockResponse
func ToStockResponse(s *inventory.Stock) StockResponse {
	return StockResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		UnitCost:    s.UnitCost,
		TotalValue:  s.TotalValue(),
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// MovementResponse represents a stock ledger row in API responses
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity" swaggertype:"string"`
	BalanceAfter  decimal.Decimal `json:"balance_after" swaggertype:"string"`
	UnitCost      decimal.Decimal `json:"unit_cost" swaggertype:"string"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListFilter represents filter options for the movement list
type MovementListFilter struct {
	Search        string     `form:"search"`
	WarehouseID   *uuid.UUID `form:"warehouse_id"`
	ProductID     *uuid.UUID `form:"product_id"`
	Type          string     `form:"type" binding:"omitempty,oneof=IN OUT ADJUST"`
	ReferenceType string     `form:"reference_type"`
	ReferenceID   *uuid.UUID `form:"reference_id"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f MovementListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("warehouse_id", f.WarehouseID).
		With("product_id", f.ProductID).
		With("type", f.Type).
		With("reference_type", f.ReferenceType).
		With("reference_id", f.ReferenceID).
		With("from", f.From).
		With("to", f.To)
}

// ToMovementResponse converts a domain StockMovement to MovementResponse
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		WarehouseID:   m.WarehouseID,
		ProductID:     m.ProductID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		BalanceAfter:  m.BalanceAfter,
		UnitCost:      m.UnitCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

// AdjustmentItemRequest is one line of an adjustment; Quantity is a signed delta
type AdjustmentItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string" example:"-2"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"decimal_gte0" swaggertype:"string" example:"0"`
}

// CreateAdjustmentRequest represents a request to create a draft adjustment
type CreateAdjustmentRequest struct {
	WarehouseID uuid.UUID               `json:"warehouse_id" binding:"required"`
	Reason      string                  `json:"reason" binding:"max=500" example:"Stock opname"`
	Items       []AdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateAdjustmentRequest replaces the warehouse, reason and items of a draft
type UpdateAdjustmentRequest struct {
	WarehouseID uuid.UUID               `json:"warehouse_id" binding:"required"`
	Reason      string                  `json:"reason" binding:"max=500"`
	Items       []AdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AdjustmentItemResponse represents an adjustment line in API responses
type AdjustmentItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitCost  decimal.Decimal `json:"unit_cost" swaggertype:"string"`
}

// AdjustmentResponse represents a stock adjustment in API responses
type AdjustmentResponse struct {
	ID          uuid.UUID                `json:"id"`
	Number      string                   `json:"number"`
	WarehouseID uuid.UUID                `json:"warehouse_id"`
	Reason      string                   `json:"reason"`
	Status      string                   `json:"status"`
	PostedAt    *time.Time               `json:"posted_at,omitempty"`
	Items       []AdjustmentItemResponse `json:"items"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Version     int                      `json:"version"`
}

// AdjustmentListFilter represents filter options for the adjustment list
type AdjustmentListFilter struct {
	Search      string     `form:"search"`
	Status      string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f AdjustmentListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("status", f.Status).
		With("warehouse_id", f.WarehouseID)
}

// ToAdjustmentResponse converts a domain StockAdjustment to AdjustmentResponse
func ToAdjustmentResponse(a *inventory.StockAdjustment) AdjustmentResponse {
	items := make([]AdjustmentItemResponse, len(a.Items))
	for i, item := range a.Items {
		items[i] = AdjustmentItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}
	return AdjustmentResponse{
		ID:          a.ID,
		Number:      a.Number,
		WarehouseID: a.WarehouseID,
		Reason:      a.Reason,
		Status:      string(a.Status),
		PostedAt:    a.PostedAt,
		Items:       items,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Version:     a.Version,
	}
}
