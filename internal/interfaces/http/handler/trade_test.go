package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	invapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/inventory"
	tradeapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/trade"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/trade"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/middleware"
	"github.com/kainnovads/apukainnovabe-sub001/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tradeFixture struct {
	engine      *gin.Engine
	ledger      *testutil.StockLedger
	keys        *testutil.IdempotencyStore
	purchases   *testutil.CrudRepository[trade.PurchaseOrder]
	sales       *testutil.CrudRepository[trade.SalesOrder]
	warehouseID uuid.UUID
	productID   uuid.UUID
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()
	f := &tradeFixture{
		ledger:      testutil.NewStockLedger(),
		keys:        &testutil.IdempotencyStore{},
		purchases:   new(testutil.CrudRepository[trade.PurchaseOrder]),
		sales:       new(testutil.CrudRepository[trade.SalesOrder]),
		warehouseID: uuid.New(),
		productID:   uuid.New(),
	}
	tx := &testutil.TxManager{}
	postings := invapp.NewPostingService(f.ledger, f.ledger.Movements(), tx, zap.NewNop(),
		invapp.WithIdempotency(f.keys, time.Hour))

	// receive and deliver only touch orders and stock
	h := NewTradeHandler(
		tradeapp.NewPurchaseOrderService(f.purchases, nil, nil, nil, nil, nil, postings, tx, zap.NewNop()),
		tradeapp.NewSalesOrderService(f.sales, nil, nil, nil, nil, nil, postings, tx, zap.NewNop()),
	)
	f.engine = newEngine()
	f.engine.Use(middleware.Idempotency())
	f.engine.POST("/trade/purchase-orders/:id/receive", h.ReceivePurchaseOrder)
	f.engine.POST("/trade/sales-orders/:id/deliver", h.DeliverSalesOrder)
	return f
}

func (f *tradeFixture) fulfil(qty int64) map[string]any {
	return map[string]any{"lines": []map[string]any{{"product_id": f.productID, "quantity": decimal.NewFromInt(qty)}}}
}

func withKey(key string) map[string]string {
	headers := tenantHeaders()
	headers[middleware.IdempotencyHeader] = key
	return headers
}

func TestTradeHandler_ReceiveIdempotency(t *testing.T) {
	f := newTradeFixture(t)
	tenantID := testutil.TestTenantID()
	order, err := trade.NewPurchaseOrder(tenantID, "PO-1", uuid.New(), f.warehouseID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, order.AddItem(f.productID, decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero))
	require.NoError(t, order.Confirm(order.OrderDate))
	f.purchases.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
	f.purchases.On("Save", mock.Anything, order).Return(nil)

	path := "/trade/purchase-orders/" + order.ID.String() + "/receive"
	w := testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(4), withKey("grn-0001"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp tradeapp.PurchaseOrderResponse
	testutil.DecodeResponse(t, w, &resp)
	assert.Equal(t, "PARTIAL_RECEIVED", resp.Status)

	t.Run("replay is rejected with 409", func(t *testing.T) {
		w := testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(4), withKey("grn-0001"))
		require.Equal(t, http.StatusConflict, w.Code)
		apiResp := testutil.DecodeResponse(t, w, nil)
		require.NotNil(t, apiResp.Error)
		assert.Equal(t, "ERR_DUPLICATE_REQUEST", apiResp.Error.Code)
		assert.True(t, f.ledger.Quantity(f.warehouseID, f.productID).Equal(decimal.NewFromInt(4)), "stock posted once")
		assert.Len(t, f.ledger.Recorded(), 1)
	})

	t.Run("failed request frees its key", func(t *testing.T) {
		w := testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(50), withKey("grn-0002"))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.False(t, f.keys.Held(tenantID.String()+":purchase_order.receive:grn-0002"))

		w = testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(6), withKey("grn-0002"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		testutil.DecodeResponse(t, w, &resp)
		assert.Equal(t, "RECEIVED", resp.Status)
	})

	t.Run("malformed key", func(t *testing.T) {
		w := testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(1), withKey("bad key!"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTradeHandler_DeliverIdempotency(t *testing.T) {
	f := newTradeFixture(t)
	tenantID := testutil.TestTenantID()
	stock, err := inventory.NewStock(tenantID, f.warehouseID, f.productID)
	require.NoError(t, err)
	require.NoError(t, stock.Increase(decimal.NewFromInt(10), decimal.NewFromInt(100)))
	require.NoError(t, f.ledger.Save(context.Background(), stock))

	order, err := trade.NewSalesOrder(tenantID, "SO-1", uuid.New(), f.warehouseID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, order.AddItem(f.productID, decimal.NewFromInt(3), decimal.NewFromInt(150), decimal.Zero))
	require.NoError(t, order.Confirm(order.OrderDate))
	f.sales.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
	f.sales.On("Save", mock.Anything, order).Return(nil)

	path := "/trade/sales-orders/" + order.ID.String() + "/deliver"
	w := testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(3), withKey("do-0001"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp tradeapp.SalesOrderResponse
	testutil.DecodeResponse(t, w, &resp)
	assert.Equal(t, "DELIVERED", resp.Status)

	w = testutil.PerformRequest(t, f.engine, http.MethodPost, path, f.fulfil(3), withKey("do-0001"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, f.ledger.Quantity(f.warehouseID, f.productID).Equal(decimal.NewFromInt(7)))
	f.sales.AssertNumberOfCalls(t, "Save", 1)
	assert.True(t, f.keys.Held(tenantID.String()+":sales_order.deliver:do-0001"))
}
