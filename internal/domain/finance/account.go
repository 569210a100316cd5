package finance

import (
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// AccountType is the classification of a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks the account type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account increases on the debit side
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is an entry in the chart of accounts
type Account struct {
	shared.TenantAggregateRoot
	Code     string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_account_tenant_code,priority:2"`
	Name     string      `gorm:"type:varchar(200);not null"`
	Type     AccountType `gorm:"type:varchar(20);not null;index"`
	ParentID *uuid.UUID  `gorm:"type:uuid;index"`
	IsActive bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates an active account
func NewAccount(tenantID uuid.UUID, code, name string, accountType AccountType) (*Account, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 200)
	if err != nil {
		return nil, err
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Type:                accountType,
		IsActive:            true,
	}, nil
}

// Update changes name and type
func (a *Account) Update(name string, accountType AccountType) error {
	name, err := shared.RequireName(name, 200)
	if err != nil {
		return err
	}
	if !accountType.IsValid() {
		return shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	a.Name = name
	a.Type = accountType
	a.IncrementVersion()
	return nil
}

// SetParent links the account under a parent of the same type
func (a *Account) SetParent(parent *Account) error {
	if parent == nil {
		a.ParentID = nil
		a.IncrementVersion()
		return nil
	}
	if parent.ID == a.ID {
		return shared.NewDomainError("INVALID_PARENT", "Account cannot be its own parent")
	}
	if parent.Type != a.Type {
		return shared.NewDomainError("INVALID_PARENT", "Parent account must have the same type")
	}
	id := parent.ID
	a.ParentID = &id
	a.IncrementVersion()
	return nil
}

// SetActive enables or disables the account
func (a *Account) SetActive(active bool) {
	a.IsActive = active
	a.IncrementVersion()
}
