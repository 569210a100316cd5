package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	invapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/trade"
	"github.com/kainnovads/apukainnovabe-sub001/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductRepo struct {
	testutil.CrudRepository[catalog.Product]
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

type mockWarehouseRepo struct {
	testutil.CrudRepository[partner.Warehouse]
}

func (m *mockWarehouseRepo) FindDefault(ctx context.Context, tenantID uuid.UUID) (*partner.Warehouse, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *mockWarehouseRepo) ClearDefault(ctx context.Context, tenantID uuid.UUID) error {
	return m.Called(ctx, tenantID).Error(0)
}

type mockTransactionRepo struct {
	testutil.CrudRepository[finance.Transaction]
}

func (m *mockTransactionRepo) FindDue(ctx context.Context, tenantID uuid.UUID, kind finance.TransactionKind, dueBefore time.Time) ([]finance.Transaction, error) {
	args := m.Called(ctx, tenantID, kind, dueBefore)
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) TenantsWithDue(ctx context.Context, dueBefore time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, dueBefore)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type fixture struct {
	tenantID     uuid.UUID
	orderDate    time.Time
	warehouse    *partner.Warehouse
	product      *catalog.Product
	tax          *catalog.Tax
	products     *mockProductRepo
	taxes        *testutil.CrudRepository[catalog.Tax]
	warehouses   *mockWarehouseRepo
	transactions *mockTransactionRepo
	stock        *testutil.StockLedger
	postings     *invapp.PostingService
	tx           *testutil.TxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenantID := testutil.TestTenantID()
	f := &fixture{
		tenantID:     tenantID,
		orderDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		products:     new(mockProductRepo),
		taxes:        new(testutil.CrudRepository[catalog.Tax]),
		warehouses:   new(mockWarehouseRepo),
		transactions: new(mockTransactionRepo),
		stock:        testutil.NewStockLedger(),
		tx:           &testutil.TxManager{},
	}
	f.postings = invapp.NewPostingService(f.stock, f.stock.Movements(), f.tx, zap.NewNop(),
		invapp.WithIdempotency(&testutil.IdempotencyStore{}, time.Hour))

	var err error
	f.warehouse, err = partner.NewWarehouse(tenantID, "WH-1", "Main")
	require.NoError(t, err)
	f.tax, err = catalog.NewTax(tenantID, "PPN11", "PPN", decimal.NewFromInt(11), catalog.TaxTypeBoth)
	require.NoError(t, err)
	f.product, err = catalog.NewProduct(tenantID, "SKU-1", "Widget", "pcs")
	require.NoError(t, err)
	require.NoError(t, f.product.SetPrices(decimal.NewFromInt(100), decimal.NewFromInt(150)))
	f.product.SetTax(&f.tax.ID)

	f.warehouses.On("FindDefault", mock.Anything, tenantID).Return(f.warehouse, nil).Maybe()
	f.warehouses.On("FindByIDForTenant", mock.Anything, tenantID, f.warehouse.ID).Return(f.warehouse, nil).Maybe()
	f.products.On("FindByIDs", mock.Anything, tenantID, mock.Anything).Return([]catalog.Product{*f.product}, nil).Maybe()
	f.taxes.On("FindByIDForTenant", mock.Anything, tenantID, f.tax.ID).Return(f.tax, nil).Maybe()
	return f
}

func (f *fixture) purchaseOrder(t *testing.T, qty int64) *trade.PurchaseOrder {
	t.Helper()
	order, err := trade.NewPurchaseOrder(f.tenantID, "PO-1", uuid.New(), f.warehouse.ID, f.orderDate)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(f.product.ID, decimal.NewFromInt(qty), decimal.NewFromInt(100), decimal.Zero))
	return order
}

func TestPurchaseOrderService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orders := new(testutil.CrudRepository[trade.PurchaseOrder])
	vendors := new(testutil.CrudRepository[partner.Vendor])
	svc := NewPurchaseOrderService(orders, vendors, f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())
	svc.now = func() time.Time { return f.orderDate.Add(9 * time.Hour) }

	vendor, err := partner.NewVendor(f.tenantID, "SUP-1", "PT Sumber")
	require.NoError(t, err)
	vendors.On("FindByIDForTenant", ctx, f.tenantID, vendor.ID).Return(vendor, nil)
	orders.On("Save", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

	resp, err := svc.Create(ctx, f.tenantID, CreatePurchaseOrderRequest{
		VendorID: vendor.ID,
		Items:    []OrderItemRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, f.warehouse.ID, resp.WarehouseID, "falls back to the default warehouse")
	assert.True(t, resp.OrderDate.Equal(f.orderDate))
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)), "purchase price default")
	assert.True(t, resp.Items[0].TaxRate.Equal(decimal.NewFromInt(11)), "rate from product tax")
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1110)), "got %s", resp.Total)
}

func TestPurchaseOrderService_ConfirmRaisesPayable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orders := new(testutil.CrudRepository[trade.PurchaseOrder])
	vendors := new(testutil.CrudRepository[partner.Vendor])
	svc := NewPurchaseOrderService(orders, vendors, f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

	vendor, err := partner.NewVendor(f.tenantID, "SUP-1", "PT Sumber")
	require.NoError(t, err)
	require.NoError(t, vendor.Update(vendor.Name, "", 30, ""))
	order := f.purchaseOrder(t, 4)
	order.VendorID = vendor.ID

	orders.On("FindByIDForTenant", ctx, f.tenantID, order.ID).Return(order, nil)
	orders.On("Save", ctx, order).Return(nil)
	vendors.On("FindByIDForTenant", ctx, f.tenantID, vendor.ID).Return(vendor, nil)

	var payable *finance.Transaction
	f.transactions.On("Save", ctx, mock.AnythingOfType("*finance.Transaction")).
		Run(func(args mock.Arguments) { payable = args.Get(1).(*finance.Transaction) }).
		Return(nil)

	resp, err := svc.Confirm(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)
	require.NotNil(t, payable)
	assert.Equal(t, finance.TransactionKindAP, payable.Kind)
	assert.Equal(t, "PT Sumber", payable.PartnerName)
	assert.True(t, payable.Amount.Equal(decimal.NewFromInt(400)))
	assert.True(t, payable.DueDate.Equal(f.orderDate.AddDate(0, 0, 30)))
	assert.Equal(t, inventory.ReferencePurchaseOrder, payable.ReferenceType)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestPurchaseOrderService_Receive(t *testing.T) {
	f := newFixture(t)
	orders := new(testutil.CrudRepository[trade.PurchaseOrder])
	svc := NewPurchaseOrderService(orders, new(testutil.CrudRepository[partner.Vendor]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

	order := f.purchaseOrder(t, 10)
	require.NoError(t, order.Confirm(f.orderDate))
	orders.On("FindByIDForTenant", mock.Anything, f.tenantID, order.ID).Return(order, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	ctx := shared.ContextWithIdempotencyKey(context.Background(), "receipt-1")
	resp, err := svc.Receive(ctx, f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(4)}}})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL_RECEIVED", resp.Status)
	assert.True(t, f.stock.Quantity(f.warehouse.ID, f.product.ID).Equal(decimal.NewFromInt(4)))

	t.Run("replayed key is rejected", func(t *testing.T) {
		_, err := svc.Receive(ctx, f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(4)}}})
		assert.ErrorIs(t, err, shared.ErrDuplicateRequest)
		assert.True(t, f.stock.Quantity(f.warehouse.ID, f.product.ID).Equal(decimal.NewFromInt(4)))
	})

	t.Run("more than remaining is rejected", func(t *testing.T) {
		_, err := svc.Receive(context.Background(), f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(7)}}})
		assert.Error(t, err)
	})

	t.Run("rest completes the order", func(t *testing.T) {
		resp, err := svc.Receive(context.Background(), f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(6)}}})
		require.NoError(t, err)
		assert.Equal(t, "RECEIVED", resp.Status)
		assert.True(t, f.stock.Quantity(f.warehouse.ID, f.product.ID).Equal(decimal.NewFromInt(10)))
		assert.Len(t, f.stock.Recorded(), 2)
	})

	t.Run("cannot cancel after receipt", func(t *testing.T) {
		_, err := svc.Cancel(context.Background(), f.tenantID, order.ID, CancelOrderRequest{Reason: "late"})
		assert.Error(t, err)
	})
}

func TestSalesOrderService_ConfirmCreditLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orders := new(testutil.CrudRepository[trade.SalesOrder])
	customers := new(testutil.CrudRepository[partner.Customer])
	svc := NewSalesOrderService(orders, customers, f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

	customer, err := partner.NewCustomer(f.tenantID, "CUS-1", "Toko Abadi")
	require.NoError(t, err)
	require.NoError(t, customer.SetCreditLimit(decimal.NewFromInt(1000)))

	order, err := trade.NewSalesOrder(f.tenantID, "SO-1", customer.ID, f.warehouse.ID, f.orderDate)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(f.product.ID, decimal.NewFromInt(5), decimal.NewFromInt(150), decimal.Zero))

	existing, err := finance.NewTransaction(f.tenantID, finance.TransactionKindAR, "AR-1", customer.ID, customer.Name,
		decimal.NewFromInt(400), f.orderDate, f.orderDate)
	require.NoError(t, err)

	orders.On("FindByIDForTenant", ctx, f.tenantID, order.ID).Return(order, nil)
	orders.On("Save", ctx, order).Return(nil)
	customers.On("FindByIDForTenant", ctx, f.tenantID, customer.ID).Return(customer, nil)
	f.transactions.On("FindAllForTenant", ctx, f.tenantID, mock.AnythingOfType("shared.Filter")).
		Return([]finance.Transaction{*existing}, nil)

	_, err = svc.Confirm(ctx, f.tenantID, order.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CREDIT_LIMIT_EXCEEDED", domainErr.Code)
	f.transactions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSalesOrderService_DeliverInsufficientStock(t *testing.T) {
	f := newFixture(t)
	orders := new(testutil.CrudRepository[trade.SalesOrder])
	svc := NewSalesOrderService(orders, new(testutil.CrudRepository[partner.Customer]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

	order, err := trade.NewSalesOrder(f.tenantID, "SO-1", uuid.New(), f.warehouse.ID, f.orderDate)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(f.product.ID, decimal.NewFromInt(5), decimal.NewFromInt(150), decimal.Zero))
	require.NoError(t, order.Confirm(f.orderDate))
	orders.On("FindByIDForTenant", mock.Anything, f.tenantID, order.ID).Return(order, nil)

	_, err = svc.Deliver(context.Background(), f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(2)}}})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.stock.Recorded())
}

func (f *fixture) stockUp(t *testing.T, qty int64) {
	t.Helper()
	stock, err := inventory.NewStock(f.tenantID, f.warehouse.ID, f.product.ID)
	require.NoError(t, err)
	require.NoError(t, stock.Increase(decimal.NewFromInt(qty), decimal.NewFromInt(100)))
	require.NoError(t, f.stock.Save(context.Background(), stock))
}

func TestSalesOrderService_DeliverCompletesOrder(t *testing.T) {
	f := newFixture(t)
	f.stockUp(t, 10)
	orders := new(testutil.CrudRepository[trade.SalesOrder])
	svc := NewSalesOrderService(orders, new(testutil.CrudRepository[partner.Customer]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

	order, err := trade.NewSalesOrder(f.tenantID, "SO-1", uuid.New(), f.warehouse.ID, f.orderDate)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(f.product.ID, decimal.NewFromInt(5), decimal.NewFromInt(150), decimal.Zero))
	require.NoError(t, order.Confirm(f.orderDate))
	orders.On("FindByIDForTenant", mock.Anything, f.tenantID, order.ID).Return(order, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	ctx := context.Background()
	resp, err := svc.Deliver(ctx, f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(2)}}})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL_DELIVERED", resp.Status)

	t.Run("cannot cancel after partial delivery", func(t *testing.T) {
		_, err := svc.Cancel(ctx, f.tenantID, order.ID, CancelOrderRequest{Reason: "changed mind"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, trade.SalesOrderStatusPartialDelivered, order.Status)
	})

	resp, err = svc.Deliver(ctx, f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(3)}}})
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)
	assert.True(t, f.stock.Quantity(f.warehouse.ID, f.product.ID).Equal(decimal.NewFromInt(5)))
	assert.Len(t, f.stock.Recorded(), 2)
	orders.AssertNumberOfCalls(t, "Save", 2)

	_, err = svc.Deliver(ctx, f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)}}})
	assert.Error(t, err, "delivered orders take no more goods")
	assert.True(t, f.stock.Quantity(f.warehouse.ID, f.product.ID).Equal(decimal.NewFromInt(5)))
}

func TestPurchaseOrderService_CancelAfterPartialReceipt(t *testing.T) {
	f := newFixture(t)
	orders := new(testutil.CrudRepository[trade.PurchaseOrder])
	svc := NewPurchaseOrderService(orders, new(testutil.CrudRepository[partner.Vendor]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

	order := f.purchaseOrder(t, 10)
	require.NoError(t, order.Confirm(f.orderDate))
	orders.On("FindByIDForTenant", mock.Anything, f.tenantID, order.ID).Return(order, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	ctx := context.Background()
	_, err := svc.Receive(ctx, f.tenantID, order.ID, FulfilRequest{Lines: []FulfilLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(3)}}})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, f.tenantID, order.ID, CancelOrderRequest{Reason: "vendor closed"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, trade.PurchaseOrderStatusPartialReceived, order.Status)
	assert.True(t, f.stock.Quantity(f.warehouse.ID, f.product.ID).Equal(decimal.NewFromInt(3)))
	orders.AssertNumberOfCalls(t, "Save", 1)
	f.transactions.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderCancel_CancelsLinkedTransactions(t *testing.T) {
	linkedFilter := func(refType string, refID uuid.UUID) any {
		return mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.Filters["reference_type"] == refType && filter.Filters["reference_id"] == refID
		})
	}
	newLinked := func(t *testing.T, f *fixture, kind finance.TransactionKind, number, refType string, refID uuid.UUID, paid bool) finance.Transaction {
		t.Helper()
		txn, err := finance.NewTransaction(f.tenantID, kind, number, uuid.New(), "Partner",
			decimal.NewFromInt(400), f.orderDate, f.orderDate.AddDate(0, 0, 30))
		require.NoError(t, err)
		txn.SetReference(refType, refID)
		if paid {
			_, err = txn.ApplyPayment(decimal.NewFromInt(400), f.orderDate, nil, "")
			require.NoError(t, err)
		}
		return *txn
	}

	t.Run("confirmed purchase order cancels its payable", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		orders := new(testutil.CrudRepository[trade.PurchaseOrder])
		svc := NewPurchaseOrderService(orders, new(testutil.CrudRepository[partner.Vendor]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

		order := f.purchaseOrder(t, 4)
		require.NoError(t, order.Confirm(f.orderDate))
		open := newLinked(t, f, finance.TransactionKindAP, "AP-1", inventory.ReferencePurchaseOrder, order.ID, false)
		paid := newLinked(t, f, finance.TransactionKindAP, "AP-2", inventory.ReferencePurchaseOrder, order.ID, true)

		orders.On("FindByIDForTenant", ctx, f.tenantID, order.ID).Return(order, nil)
		orders.On("Save", ctx, order).Return(nil)
		f.transactions.On("FindAllForTenant", ctx, f.tenantID, linkedFilter(inventory.ReferencePurchaseOrder, order.ID)).
			Return([]finance.Transaction{open, paid}, nil)

		var saved []*finance.Transaction
		f.transactions.On("Save", ctx, mock.AnythingOfType("*finance.Transaction")).
			Run(func(args mock.Arguments) { saved = append(saved, args.Get(1).(*finance.Transaction)) }).
			Return(nil)

		resp, err := svc.Cancel(ctx, f.tenantID, order.ID, CancelOrderRequest{Reason: "duplicate"})
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		require.Len(t, saved, 1, "paid transactions stay untouched")
		assert.Equal(t, open.ID, saved[0].ID)
		assert.Equal(t, finance.TransactionStatusCancelled, saved[0].Status)
		assert.Equal(t, 1, f.tx.Calls, "order and payable change together")
	})

	t.Run("confirmed sales order cancels its receivable", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		orders := new(testutil.CrudRepository[trade.SalesOrder])
		svc := NewSalesOrderService(orders, new(testutil.CrudRepository[partner.Customer]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

		order, err := trade.NewSalesOrder(f.tenantID, "SO-1", uuid.New(), f.warehouse.ID, f.orderDate)
		require.NoError(t, err)
		require.NoError(t, order.AddItem(f.product.ID, decimal.NewFromInt(2), decimal.NewFromInt(200), decimal.Zero))
		require.NoError(t, order.Confirm(f.orderDate))
		receivable := newLinked(t, f, finance.TransactionKindAR, "AR-1", inventory.ReferenceSalesOrder, order.ID, false)

		orders.On("FindByIDForTenant", ctx, f.tenantID, order.ID).Return(order, nil)
		orders.On("Save", ctx, order).Return(nil)
		f.transactions.On("FindAllForTenant", ctx, f.tenantID, linkedFilter(inventory.ReferenceSalesOrder, order.ID)).
			Return([]finance.Transaction{receivable}, nil)
		f.transactions.On("Save", ctx, mock.MatchedBy(func(txn *finance.Transaction) bool {
			return txn.ID == receivable.ID && txn.Status == finance.TransactionStatusCancelled
		})).Return(nil).Once()

		resp, err := svc.Cancel(ctx, f.tenantID, order.ID, CancelOrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		f.transactions.AssertExpectations(t)
	})

	t.Run("draft order has nothing linked", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		orders := new(testutil.CrudRepository[trade.PurchaseOrder])
		svc := NewPurchaseOrderService(orders, new(testutil.CrudRepository[partner.Vendor]), f.warehouses, f.products, f.taxes, f.transactions, f.postings, f.tx, zap.NewNop())

		order := f.purchaseOrder(t, 4)
		orders.On("FindByIDForTenant", ctx, f.tenantID, order.ID).Return(order, nil)
		orders.On("Save", ctx, order).Return(nil)

		_, err := svc.Cancel(ctx, f.tenantID, order.ID, CancelOrderRequest{Reason: "typo"})
		require.NoError(t, err)
		f.transactions.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything)
	})
}
