package finance

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BankAccount is a cash or bank account money is paid from and into
type BankAccount struct {
	shared.TenantAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_bank_account_tenant_code,priority:2"`
	BankName      string          `gorm:"type:varchar(100);not null"`
	AccountNumber string          `gorm:"type:varchar(50);not null"`
	HolderName    string          `gorm:"type:varchar(200);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'IDR'"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AccountID     *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// NewBankAccount creates an active bank account with zero balance
func NewBankAccount(tenantID uuid.UUID, code, bankName, accountNumber, holderName, currency string) (*BankAccount, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	b := &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Balance:             decimal.Zero,
		IsActive:            true,
	}
	if err := b.setDetails(bankName, accountNumber, holderName, currency); err != nil {
		return nil, err
	}
	return b, nil
}

// Update changes the bank details
func (b *BankAccount) Update(bankName, accountNumber, holderName, currency string) error {
	if err := b.setDetails(bankName, accountNumber, holderName, currency); err != nil {
		return err
	}
	b.IncrementVersion()
	return nil
}

func (b *BankAccount) setDetails(bankName, accountNumber, holderName, currency string) error {
	bankName, err := shared.RequireName(bankName, 100)
	if err != nil {
		return err
	}
	holderName, err = shared.RequireName(holderName, 200)
	if err != nil {
		return err
	}
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "IDR"
	}
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	b.BankName = bankName
	b.AccountNumber = accountNumber
	b.HolderName = holderName
	b.Currency = currency
	return nil
}

// LinkAccount ties the bank account to a ledger account
func (b *BankAccount) LinkAccount(accountID *uuid.UUID) {
	if accountID != nil && *accountID == uuid.Nil {
		accountID = nil
	}
	b.AccountID = accountID
	b.IncrementVersion()
}

// Deposit adds money
func (b *BankAccount) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !b.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Bank account is inactive")
	}
	b.Balance = b.Balance.Add(amount)
	b.IncrementVersion()
	return nil
}

// Withdraw takes money out; the balance never goes negative
func (b *BankAccount) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !b.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Bank account is inactive")
	}
	if amount.GreaterThan(b.Balance) {
		return shared.ErrInsufficientBalance
	}
	b.Balance = b.Balance.Sub(amount)
	b.IncrementVersion()
	return nil
}

// SetActive enables or disables the account
func (b *BankAccount) SetActive(active bool) {
	b.IsActive = active
	b.IncrementVersion()
}
