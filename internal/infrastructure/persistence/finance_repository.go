package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGormAccountRepository creates the chart of accounts repository
func NewGormAccountRepository(db *gorm.DB) *GormCrudRepository[finance.Account] {
	return NewGormCrudRepository[finance.Account](db, TableSpec{
		CodeColumn:    "code",
		SearchColumns: []string{"code", "name"},
		Filters: map[string]FilterFunc{
			"type":      Eq("type"),
			"parent_id": Eq("parent_id"),
			"is_active": Eq("is_active"),
		},
		SortFields:  AccountSortFields,
		DefaultSort: "code",
	})
}

// GormBankAccountRepository implements finance.BankAccountRepository
type GormBankAccountRepository struct {
	*GormCrudRepository[finance.BankAccount]
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{
		GormCrudRepository: NewGormCrudRepository[finance.BankAccount](db, TableSpec{
			CodeColumn:    "code",
			SearchColumns: []string{"code", "bank_name", "account_number", "holder_name"},
			Filters: map[string]FilterFunc{
				"currency":  Eq("currency"),
				"is_active": Eq("is_active"),
			},
			SortFields:  BankAccountSortFields,
			DefaultSort: "code",
		}),
	}
}

// FindForUpdate loads the bank account with SELECT ... FOR UPDATE
func (r *GormBankAccountRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.BankAccount, error) {
	var account finance.BankAccount
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// NewGormExpenseRepository creates the expense repository
func NewGormExpenseRepository(db *gorm.DB) *GormCrudRepository[finance.Expense] {
	return NewGormCrudRepository[finance.Expense](db, TableSpec{
		CodeColumn:    "number",
		SearchColumns: []string{"number", "description"},
		Filters: map[string]FilterFunc{
			"status":          Eq("status"),
			"account_id":      Eq("account_id"),
			"bank_account_id": Eq("bank_account_id"),
			"from":            Gte("date"),
			"to":              Lte("date"),
		},
		SortFields:  ExpenseSortFields,
		DefaultSort: "date",
	})
}

// NewGormAssetRepository creates the fixed asset repository
func NewGormAssetRepository(db *gorm.DB) *GormCrudRepository[finance.Asset] {
	return NewGormCrudRepository[finance.Asset](db, TableSpec{
		CodeColumn:    "code",
		SearchColumns: []string{"code", "name", "category"},
		Filters: map[string]FilterFunc{
			"status":   Eq("status"),
			"category": Eq("category"),
		},
		SortFields:  AssetSortFields,
		DefaultSort: "code",
	})
}

// openStatuses are the transaction states still awaiting payment
var openStatuses = []finance.TransactionStatus{finance.TransactionStatusOpen, finance.TransactionStatusPartial}

// GormTransactionRepository implements finance.TransactionRepository
type GormTransactionRepository struct {
	*GormCrudRepository[finance.Transaction]
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{
		GormCrudRepository: NewGormCrudRepository[finance.Transaction](db, TableSpec{
			CodeColumn:    "number",
			SearchColumns: []string{"number", "partner_name", "note"},
			Filters: map[string]FilterFunc{
				"kind":           Eq("kind"),
				"status":         Eq("status"),
				"partner_id":     Eq("partner_id"),
				"reference_type": Eq("reference_type"),
				"reference_id":   Eq("reference_id"),
				"due_from":       Gte("due_date"),
				"due_to":         Lte("due_date"),
			},
			SortFields:  TransactionSortFields,
			DefaultSort: "due_date",
			Preloads:    []string{"Payments"},
		}),
	}
}

// Save stores the transaction and replaces its payments
func (r *GormTransactionRepository) Save(ctx context.Context, txn *finance.Transaction) error {
	return saveWithChildren(r.conn(ctx), txn, "transaction_id", txn.ID, txn.Payments)
}

// FindDue returns open and partially paid transactions due on or before dueBefore
func (r *GormTransactionRepository) FindDue(ctx context.Context, tenantID uuid.UUID, kind finance.TransactionKind, dueBefore time.Time) ([]finance.Transaction, error) {
	var txns []finance.Transaction
	if err := r.conn(ctx).
		Where("tenant_id = ? AND kind = ? AND status IN ? AND due_date <= ?", tenantID, kind, openStatuses, dueBefore).
		Order("due_date ASC, number ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// TenantsWithDue lists tenants holding unsettled transactions due on or before dueBefore
func (r *GormTransactionRepository) TenantsWithDue(ctx context.Context, dueBefore time.Time) ([]uuid.UUID, error) {
	var tenants []uuid.UUID
	if err := r.conn(ctx).Model(&finance.Transaction{}).
		Distinct("tenant_id").
		Where("status IN ? AND due_date <= ?", openStatuses, dueBefore).
		Pluck("tenant_id", &tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

var (
	_ finance.AccountRepository     = (*GormCrudRepository[finance.Account])(nil)
	_ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)
	_ finance.ExpenseRepository     = (*GormCrudRepository[finance.Expense])(nil)
	_ finance.AssetRepository       = (*GormCrudRepository[finance.Asset])(nil)
	_ finance.TransactionRepository = (*GormTransactionRepository)(nil)
)
