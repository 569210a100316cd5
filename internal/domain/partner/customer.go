package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a party goods are sold to
type Customer struct {
	shared.TenantAggregateRoot
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name            string          `gorm:"type:varchar(200);not null"`
	TaxNumber       string          `gorm:"type:varchar(50)"`
	PaymentTermDays int             `gorm:"not null;default:0"`
	CreditLimit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`
	Notes           string          `gorm:"type:text"`
	Contact         `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates an active customer with no credit limit
func NewCustomer(tenantID uuid.UUID, code, name string) (*Customer, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 200)
	if err != nil {
		return nil, err
	}
	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		CreditLimit:         decimal.Zero,
		IsActive:            true,
	}, nil
}

// Update changes the customer's commercial details
func (c *Customer) Update(name, taxNumber string, paymentTermDays int, notes string) error {
	name, err := shared.RequireName(name, 200)
	if err != nil {
		return err
	}
	if paymentTermDays < 0 || paymentTermDays > 365 {
		return shared.NewDomainError("INVALID_PAYMENT_TERM", "Payment term must be between 0 and 365 days")
	}
	c.Name = name
	c.TaxNumber = strings.TrimSpace(taxNumber)
	c.PaymentTermDays = paymentTermDays
	c.Notes = notes
	c.IncrementVersion()
	return nil
}

// SetCreditLimit sets the maximum outstanding receivable; zero means unlimited
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.IncrementVersion()
	return nil
}

// WithinCreditLimit reports whether outstanding receivables stay inside the limit
func (c *Customer) WithinCreditLimit(outstanding decimal.Decimal) bool {
	if c.CreditLimit.IsZero() {
		return true
	}
	return outstanding.LessThanOrEqual(c.CreditLimit)
}

// SetContact replaces the contact block
func (c *Customer) SetContact(contact Contact) {
	c.Contact = contact
	c.IncrementVersion()
}

// SetActive enables or disables the customer
func (c *Customer) SetActive(active bool) {
	c.IsActive = active
	c.IncrementVersion()
}
