package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// AccountRepository persists the chart of accounts
type AccountRepository interface {
	shared.CrudRepository[Account]
}

// BankAccountRepository persists bank accounts
type BankAccountRepository interface {
	shared.CrudRepository[BankAccount]
	// FindForUpdate loads and row-locks a bank account inside a transaction
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*BankAccount, error)
}

// ExpenseRepository persists expenses; ExistsByCode checks the number
type ExpenseRepository interface {
	shared.CrudRepository[Expense]
}

// AssetRepository persists fixed assets
type AssetRepository interface {
	shared.CrudRepository[Asset]
}

// TransactionRepository persists AP/AR transactions with their payments
type TransactionRepository interface {
	shared.CrudRepository[Transaction]
	// FindDue returns unsettled transactions due on or before the given date
	FindDue(ctx context.Context, tenantID uuid.UUID, kind TransactionKind, dueBefore time.Time) ([]Transaction, error)
	// TenantsWithDue lists tenants holding unsettled transactions due on or before the given date
	TenantsWithDue(ctx context.Context, dueBefore time.Time) ([]uuid.UUID, error)
}
