package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable or purchasable item tracked in stock
type Product struct {
	shared.TenantAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxID         *uuid.UUID      `gorm:"type:uuid;index"`
	MinStock      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImagePath     string          `gorm:"type:varchar(500)"`
	ThumbnailPath string          `gorm:"type:varchar(500)"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product with zero prices
func NewProduct(tenantID uuid.UUID, code, name, unit string) (*Product, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 200)
	if err != nil {
		return nil, err
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Unit:                unit,
		PurchasePrice:       decimal.Zero,
		SellingPrice:        decimal.Zero,
		MinStock:            decimal.Zero,
		IsActive:            true,
	}, nil
}

// Update changes descriptive fields
func (p *Product) Update(name, description, unit string) error {
	name, err := shared.RequireName(name, 200)
	if err != nil {
		return err
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.Unit = unit
	p.IncrementVersion()
	return nil
}

// SetPrices sets purchase and selling prices
func (p *Product) SetPrices(purchase, selling decimal.Decimal) error {
	if purchase.IsNegative() || selling.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.PurchasePrice = purchase
	p.SellingPrice = selling
	p.IncrementVersion()
	return nil
}

// SetMinStock sets the low-stock threshold
func (p *Product) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.IncrementVersion()
	return nil
}

// SetTax links a default tax; nil clears it
func (p *Product) SetTax(taxID *uuid.UUID) {
	if taxID != nil && *taxID == uuid.Nil {
		taxID = nil
	}
	p.TaxID = taxID
	p.IncrementVersion()
}

// SetImage records the stored image and thumbnail paths
func (p *Product) SetImage(imagePath, thumbnailPath string) {
	p.ImagePath = imagePath
	p.ThumbnailPath = thumbnailPath
	p.IncrementVersion()
}

// SetActive enables or disables the product
func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.IncrementVersion()
}

// Margin returns selling minus purchase price
func (p *Product) Margin() decimal.Decimal {
	return p.SellingPrice.Sub(p.PurchasePrice)
}
