package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// Vendor is a supplier goods are purchased from
type Vendor struct {
	shared.TenantAggregateRoot
	Code            string `gorm:"type:varchar(50);not null;uniqueIndex:idx_vendor_tenant_code,priority:2"`
	Name            string `gorm:"type:varchar(200);not null"`
	TaxNumber       string `gorm:"type:varchar(50)"`
	PaymentTermDays int    `gorm:"not null;default:0"`
	IsActive        bool   `gorm:"not null;default:true"`
	Notes           string `gorm:"type:text"`
	Contact         `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates an active vendor
func NewVendor(tenantID uuid.UUID, code, name string) (*Vendor, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 200)
	if err != nil {
		return nil, err
	}
	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		IsActive:            true,
	}, nil
}

// Update changes the vendor's commercial details
func (v *Vendor) Update(name, taxNumber string, paymentTermDays int, notes string) error {
	name, err := shared.RequireName(name, 200)
	if err != nil {
		return err
	}
	if paymentTermDays < 0 || paymentTermDays > 365 {
		return shared.NewDomainError("INVALID_PAYMENT_TERM", "Payment term must be between 0 and 365 days")
	}
	v.Name = name
	v.TaxNumber = strings.TrimSpace(taxNumber)
	v.PaymentTermDays = paymentTermDays
	v.Notes = notes
	v.IncrementVersion()
	return nil
}

// SetContact replaces the contact block
func (v *Vendor) SetContact(c Contact) {
	v.Contact = c
	v.IncrementVersion()
}

// SetActive enables or disables the vendor
func (v *Vendor) SetActive(active bool) {
	v.IsActive = active
	v.IncrementVersion()
}
