package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormWarehouseRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds warehouse within tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		tenantID := uuid.New()
		warehouseID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "name", "is_default", "is_active"}).
			AddRow(warehouseID, tenantID, "WH-01", "Main Warehouse", true, true)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE .*tenant_id = \$1 AND id = \$2.* LIMIT .*`).
			WithArgs(tenantID, warehouseID, 1).
			WillReturnRows(rows)

		warehouse, err := repo.FindByIDForTenant(context.Background(), tenantID, warehouseID)

		require.NoError(t, err)
		assert.Equal(t, warehouseID, warehouse.ID)
		assert.Equal(t, "WH-01", warehouse.Code)
		assert.True(t, warehouse.IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps record not found to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "warehouses"`).
			WillReturnError(gorm.ErrRecordNotFound)

		warehouse, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, warehouse)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCrudRepository_FindAllForTenant(t *testing.T) {
	t.Run("applies whitelisted sort and pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 ORDER BY name ASC LIMIT \$2 OFFSET \$3`).
			WithArgs(tenantID, 10, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow(uuid.New(), "WH-02"))

		filter := shared.NewFilter(2, 10, "name", "asc", "")
		warehouses, err := repo.FindAllForTenant(context.Background(), tenantID, filter)

		require.NoError(t, err)
		assert.Len(t, warehouses, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to default sort for unknown fields", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 ORDER BY code DESC LIMIT \$2`).
			WithArgs(tenantID, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.NewFilter(1, 20, "name; DROP TABLE warehouses", "sideways", "")
		_, err := repo.FindAllForTenant(context.Background(), tenantID, filter)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search and filters narrow the query", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 AND \(+code ILIKE \$2 OR name ILIKE \$3 OR city ILIKE \$4\)+ AND is_active = \$5`).
			WithArgs(tenantID, "%main%", "%main%", "%main%", true, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.NewFilter(1, 20, "", "", "main").With("is_active", true)
		_, err := repo.FindAllForTenant(context.Background(), tenantID, filter)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero page size returns every row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 ORDER BY code DESC$`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindAllForTenant(context.Background(), tenantID, shared.Filter{})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCrudRepository_CountAndExists(t *testing.T) {
	t.Run("counts rows of a tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountForTenant(context.Background(), tenantID, shared.DefaultFilter())

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExistsByCode checks the configured column", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE tenant_id = \$1 AND number = \$2`).
			WithArgs(tenantID, "PO-20260101-ABCDEF12").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "PO-20260101-ABCDEF12")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExistsByCode without code column is an error", func(t *testing.T) {
		gormDB, _, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormStockRepository(gormDB)

		_, err := repo.ExistsByCode(context.Background(), uuid.New(), "X")

		assert.Error(t, err)
	})
}

func TestGormCrudRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes an existing row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormEmployeeRepository(gormDB)

		tenantID, id := uuid.New(), uuid.New()
		mock.ExpectExec(`DELETE FROM "employees" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteForTenant(context.Background(), tenantID, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormEmployeeRepository(gormDB)

		mock.ExpectExec(`DELETE FROM "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_ClearDefault(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormWarehouseRepository(gormDB)

	mock.ExpectExec(`UPDATE "warehouses" SET "is_default"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ClearDefault(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockRepository_FindForUpdate(t *testing.T) {
	t.Run("locks the row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormStockRepository(gormDB)

		tenantID, warehouseID, productID := uuid.New(), uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "stocks" WHERE .*tenant_id = \$1 AND warehouse_id = \$2 AND product_id = \$3.* FOR UPDATE`).
			WithArgs(tenantID, warehouseID, productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "warehouse_id", "product_id", "quantity", "unit_cost"}).
				AddRow(uuid.New(), tenantID, warehouseID, productID, "12.5", "1000"))

		stock, err := repo.FindForUpdate(context.Background(), tenantID, warehouseID, productID)

		require.NoError(t, err)
		assert.Equal(t, "12.5", stock.Quantity.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormStockRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "stocks"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindForUpdate(context.Background(), uuid.New(), uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTransactionRepository_Due(t *testing.T) {
	t.Run("FindDue keeps unsettled rows of one kind", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormTransactionRepository(gormDB)

		tenantID := uuid.New()
		cutoff := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE tenant_id = \$1 AND kind = \$2 AND status IN \(\$3,\$4\) AND due_date <= \$5 ORDER BY due_date ASC, number ASC`).
			WithArgs(tenantID, finance.TransactionKindAP, finance.TransactionStatusOpen, finance.TransactionStatusPartial, cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"id", "number"}).AddRow(uuid.New(), "AP-1"))

		txns, err := repo.FindDue(context.Background(), tenantID, finance.TransactionKindAP, cutoff)

		require.NoError(t, err)
		assert.Len(t, txns, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TenantsWithDue plucks distinct tenants", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormTransactionRepository(gormDB)

		a, b := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT DISTINCT "tenant_id" FROM "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow(a).AddRow(b))

		tenants, err := repo.TenantsWithDue(context.Background(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, b}, tenants)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
