package catalog

import (
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxType tells which documents a tax applies to
type TaxType string

const (
	TaxTypeSales    TaxType = "SALES"
	TaxTypePurchase TaxType = "PURCHASE"
	TaxTypeBoth     TaxType = "BOTH"
)

// IsValid checks the tax type
func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypeSales, TaxTypePurchase, TaxTypeBoth:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// Tax is a percentage levied on sales or purchases
type Tax struct {
	shared.TenantAggregateRoot
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_tax_tenant_code,priority:2"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Rate     decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	Type     TaxType         `gorm:"type:varchar(20);not null"`
	IsActive bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tax) TableName() string {
	return "taxes"
}

// NewTax creates an active tax with a percentage rate
func NewTax(tenantID uuid.UUID, code, name string, rate decimal.Decimal, taxType TaxType) (*Tax, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 100)
	if err != nil {
		return nil, err
	}
	if err := validateTax(rate, taxType); err != nil {
		return nil, err
	}
	return &Tax{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Rate:                rate,
		Type:                taxType,
		IsActive:            true,
	}, nil
}

// Update changes name, rate and type
func (t *Tax) Update(name string, rate decimal.Decimal, taxType TaxType) error {
	name, err := shared.RequireName(name, 100)
	if err != nil {
		return err
	}
	if err := validateTax(rate, taxType); err != nil {
		return err
	}
	t.Name = name
	t.Rate = rate
	t.Type = taxType
	t.IncrementVersion()
	return nil
}

// SetActive enables or disables the tax
func (t *Tax) SetActive(active bool) {
	t.IsActive = active
	t.IncrementVersion()
}

// Apply returns the tax due on amount, rounded to 2 places
func (t *Tax) Apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(t.Rate).Div(hundred).Round(2)
}

// AppliesToSales reports whether the tax can be used on sales documents
func (t *Tax) AppliesToSales() bool {
	return t.Type == TaxTypeSales || t.Type == TaxTypeBoth
}

// AppliesToPurchases reports whether the tax can be used on purchase documents
func (t *Tax) AppliesToPurchases() bool {
	return t.Type == TaxTypePurchase || t.Type == TaxTypeBoth
}

func validateTax(rate decimal.Decimal, taxType TaxType) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	if !taxType.IsValid() {
		return shared.NewDomainError("INVALID_TAX_TYPE", "Tax type must be SALES, PURCHASE or BOTH")
	}
	return nil
}
