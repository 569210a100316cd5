package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestGormStockRepository_SQLite(t *testing.T) {
	db := setupSQLite(t, &inventory.Stock{}, &inventory.StockMovement{}, &catalog.Product{})
	ctx := context.Background()
	stocks := NewGormStockRepository(db)
	movements := NewGormMovementRepository(db)
	tm := NewGormTransactionManager(db)

	tenantID, warehouseID := uuid.New(), uuid.New()
	product, err := catalog.NewProduct(tenantID, "SKU-1", "Widget", "pcs")
	require.NoError(t, err)
	require.NoError(t, product.SetMinStock(decimal.NewFromInt(10)))
	require.NoError(t, db.Create(product).Error)

	t.Run("posting commits stock and movement together", func(t *testing.T) {
		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			_, err := stocks.FindForUpdate(ctx, tenantID, warehouseID, product.ID)
			require.ErrorIs(t, err, shared.ErrNotFound)

			stock, err := inventory.NewStock(tenantID, warehouseID, product.ID)
			if err != nil {
				return err
			}
			posting := inventory.Posting{Type: inventory.MovementTypeIn, Note: "opening"}
			line := inventory.StockLine{WarehouseID: warehouseID, ProductID: product.ID, Delta: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(100)}
			movement, err := posting.ApplyLine(stock, line)
			if err != nil {
				return err
			}
			if err := stocks.Save(ctx, stock); err != nil {
				return err
			}
			return movements.Create(ctx, movement)
		})
		require.NoError(t, err)

		stock, err := stocks.FindForUpdate(ctx, tenantID, warehouseID, product.ID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(4)))

		count, err := movements.CountForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("failure rolls back every write", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
			stock, err := stocks.FindForUpdate(ctx, tenantID, warehouseID, product.ID)
			if err != nil {
				return err
			}
			if err := stock.Increase(decimal.NewFromInt(100), decimal.NewFromInt(1)); err != nil {
				return err
			}
			if err := stocks.Save(ctx, stock); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		stock, err := stocks.FindForUpdate(ctx, tenantID, warehouseID, product.ID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("low stock filter compares against product minimum", func(t *testing.T) {
		filter := shared.Filter{}.With("low_stock", true)
		low, err := stocks.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Len(t, low, 1)

		filter = shared.Filter{}.With("warehouse_id", uuid.New())
		none, err := stocks.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestGormPurchaseOrderRepository_SaveReplacesItems(t *testing.T) {
	db := setupSQLite(t, &trade.PurchaseOrder{}, &trade.PurchaseOrderItem{})
	ctx := context.Background()
	repo := NewGormPurchaseOrderRepository(db)

	tenantID := uuid.New()
	order, err := trade.NewPurchaseOrder(tenantID, "PO-1", uuid.New(), uuid.New(), time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	first, second := uuid.New(), uuid.New()
	require.NoError(t, order.AddItem(first, decimal.NewFromInt(2), decimal.NewFromInt(50), decimal.Zero))
	require.NoError(t, order.AddItem(second, decimal.NewFromInt(1), decimal.NewFromInt(75), decimal.Zero))
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.ClearItems())
	require.NoError(t, order.AddItem(second, decimal.NewFromInt(3), decimal.NewFromInt(75), decimal.Zero))
	require.NoError(t, repo.Save(ctx, order))

	loaded, err := repo.FindByIDForTenant(ctx, tenantID, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, second, loaded.Items[0].ProductID)
	assert.True(t, loaded.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, loaded.Total.Equal(decimal.NewFromInt(225)))

	var itemRows int64
	require.NoError(t, db.Model(&trade.PurchaseOrderItem{}).Count(&itemRows).Error)
	assert.Equal(t, int64(1), itemRows)
}
