package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code          string           `json:"code" binding:"required,min=1,max=50" example:"SKU-001"`
	Name          string           `json:"name" binding:"required,min=1,max=200" example:"Kopi Arabika 250g"`
	Description   string           `json:"description" binding:"max=2000"`
	Unit          string           `json:"unit" binding:"required,min=1,max=20" example:"pcs"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" binding:"omitempty,decimal_gte0" swaggertype:"string" example:"45000"`
	SellingPrice  *decimal.Decimal `json:"selling_price" binding:"omitempty,decimal_gte0" swaggertype:"string" example:"60000"`
	TaxID         *uuid.UUID       `json:"tax_id"`
	MinStock      *decimal.Decimal `json:"min_stock" binding:"omitempty,decimal_gte0" swaggertype:"string" example:"10"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	Unit          *string          `json:"unit" binding:"omitempty,min=1,max=20"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" binding:"omitempty,decimal_gte0" swaggertype:"string"`
	SellingPrice  *decimal.Decimal `json:"selling_price" binding:"omitempty,decimal_gte0" swaggertype:"string"`
	TaxID         *uuid.UUID       `json:"tax_id"`
	ClearTax      bool             `json:"clear_tax"`
	MinStock      *decimal.Decimal `json:"min_stock" binding:"omitempty,decimal_gte0" swaggertype:"string"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price" swaggertype:"string"`
	SellingPrice  decimal.Decimal `json:"selling_price" swaggertype:"string"`
	Margin        decimal.Decimal `json:"margin" swaggertype:"string"`
	TaxID         *uuid.UUID      `json:"tax_id,omitempty"`
	MinStock      decimal.Decimal `json:"min_stock" swaggertype:"string"`
	ImagePath     string          `json:"image_path,omitempty"`
	ThumbnailPath string          `json:"thumbnail_path,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string     `form:"search"`
	Unit     string     `form:"unit"`
	TaxID    *uuid.UUID `form:"tax_id"`
	IsActive *bool      `form:"is_active"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ProductListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("unit", f.Unit).
		With("tax_id", f.TaxID).
		With("is_active", f.IsActive)
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Margin:        p.Margin(),
		TaxID:         p.TaxID,
		MinStock:      p.MinStock,
		ImagePath:     p.ImagePath,
		ThumbnailPath: p.ThumbnailPath,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// CreateTaxRequest represents a request to create a tax
type CreateTaxRequest struct {
	Code string          `json:"code" binding:"required,min=1,max=50" example:"PPN11"`
	Name string          `json:"name" binding:"required,min=1,max=100" example:"PPN 11%"`
	Rate decimal.Decimal `json:"rate" binding:"decimal_gte0" swaggertype:"string" example:"11"`
	Type string          `json:"type" binding:"required,oneof=SALES PURCHASE BOTH" example:"BOTH"`
}

// UpdateTaxRequest represents a request to update a tax
type UpdateTaxRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Rate     decimal.Decimal `json:"rate" binding:"decimal_gte0" swaggertype:"string"`
	Type     string          `json:"type" binding:"required,oneof=SALES PURCHASE BOTH"`
	IsActive *bool           `json:"is_active"`
}

// TaxResponse represents a tax in API responses
type TaxResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string"`
	Type      string          `json:"type"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// TaxListFilter represents filter options for the tax list
type TaxListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=SALES PURCHASE BOTH"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f TaxListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("type", f.Type).
		With("is_active", f.IsActive)
}

// ToTaxResponse converts a domain Tax to TaxResponse
func ToTaxResponse(t *catalog.Tax) TaxResponse {
	return TaxResponse{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		Rate:      t.Rate,
		Type:      string(t.Type),
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Version:   t.Version,
	}
}
