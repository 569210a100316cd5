package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseStatus is the lifecycle state of an expense
type ExpenseStatus string

const (
	ExpenseStatusDraft  ExpenseStatus = "DRAFT"
	ExpenseStatusPosted ExpenseStatus = "POSTED"
)

// Expense is money spent against an expense account
type Expense struct {
	shared.TenantAggregateRoot
	Number        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_expense_tenant_number,priority:2"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BankAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxID         *uuid.UUID      `gorm:"type:uuid"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Description   string          `gorm:"type:text"`
	ReceiptPath   string          `gorm:"type:varchar(500)"`
	Status        ExpenseStatus   `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	PostedAt      *time.Time
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a draft expense
func NewExpense(tenantID uuid.UUID, number string, date time.Time, accountID uuid.UUID, amount decimal.Decimal, description string) (*Expense, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Expense number cannot be empty")
	}
	e := &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		TaxAmount:           decimal.Zero,
		Status:              ExpenseStatusDraft,
	}
	if err := e.set(date, accountID, amount, description); err != nil {
		return nil, err
	}
	return e, nil
}

// Update changes a draft expense
func (e *Expense) Update(date time.Time, accountID uuid.UUID, amount decimal.Decimal, description string) error {
	if !e.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft expenses can be modified")
	}
	if err := e.set(date, accountID, amount, description); err != nil {
		return err
	}
	e.IncrementVersion()
	return nil
}

func (e *Expense) set(date time.Time, accountID uuid.UUID, amount decimal.Decimal, description string) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if accountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Expense account is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	e.Date = date
	e.AccountID = accountID
	e.Amount = amount
	e.Description = strings.TrimSpace(description)
	return nil
}

// SetBankAccount chooses the account the expense is paid from
func (e *Expense) SetBankAccount(bankAccountID *uuid.UUID) error {
	if !e.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft expenses can be modified")
	}
	if bankAccountID != nil && *bankAccountID == uuid.Nil {
		bankAccountID = nil
	}
	e.BankAccountID = bankAccountID
	e.IncrementVersion()
	return nil
}

// SetTax records the tax applied on top of the amount
func (e *Expense) SetTax(taxID *uuid.UUID, taxAmount decimal.Decimal) error {
	if !e.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft expenses can be modified")
	}
	if taxAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Tax amount cannot be negative")
	}
	if taxID != nil && *taxID == uuid.Nil {
		taxID = nil
	}
	if taxID == nil {
		taxAmount = decimal.Zero
	}
	e.TaxID = taxID
	e.TaxAmount = taxAmount
	e.IncrementVersion()
	return nil
}

// AttachReceipt stores the uploaded receipt path
func (e *Expense) AttachReceipt(path string) {
	e.ReceiptPath = path
	e.IncrementVersion()
}

// Total returns amount plus tax
func (e *Expense) Total() decimal.Decimal {
	return e.Amount.Add(e.TaxAmount)
}

// Post finalizes the expense
func (e *Expense) Post(at time.Time) error {
	if !e.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Expense is already posted")
	}
	e.Status = ExpenseStatusPosted
	e.PostedAt = &at
	e.IncrementVersion()
	return nil
}

// IsDraft reports whether the expense can still be edited
func (e *Expense) IsDraft() bool {
	return e.Status == ExpenseStatusDraft
}
