package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/analytics"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type mockBasketRepo struct {
	mock.Mock
}

func (m *mockBasketRepo) OrderLines(ctx context.Context, tenantID uuid.UUID) ([]analytics.OrderLine, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.OrderLine), args.Error(1)
}

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

// memCache round-trips values through JSON like the redis cache does
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

type fixture struct {
	tenantID uuid.UUID
	widget   *catalog.Product
	gadget   *catalog.Product
	baskets  *mockBasketRepo
	products *mockProductRepo
	cache    *memCache
	svc      *AssociationService
}

// newFixture seeds three orders: two with widget+gadget and one with an unknown product
func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenantID := testutil.TestTenantID()
	widget, err := catalog.NewProduct(tenantID, "SKU-1", "Widget", "pcs")
	require.NoError(t, err)
	gadget, err := catalog.NewProduct(tenantID, "SKU-2", "Gadget", "pcs")
	require.NoError(t, err)

	o1, o2, o3 := uuid.New(), uuid.New(), uuid.New()
	lines := []analytics.OrderLine{
		{OrderID: o1, ProductID: widget.ID},
		{OrderID: o1, ProductID: gadget.ID},
		{OrderID: o2, ProductID: gadget.ID},
		{OrderID: o2, ProductID: widget.ID},
		{OrderID: o2, ProductID: widget.ID},
		{OrderID: o3, ProductID: uuid.New()},
	}

	f := &fixture{
		tenantID: tenantID,
		widget:   widget,
		gadget:   gadget,
		baskets:  new(mockBasketRepo),
		products: new(mockProductRepo),
		cache:    newMemCache(),
	}
	f.baskets.On("OrderLines", mock.Anything, tenantID).Return(lines, nil)
	f.products.On("FindByIDs", mock.Anything, tenantID, mock.Anything).Return([]catalog.Product{*widget, *gadget}, nil)

	f.svc = NewAssociationService(f.baskets, f.products, config.MiningConfig{CacheTTL: time.Hour}, zap.NewNop(),
		WithCache(f.cache, time.Hour))
	f.svc.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestAssociationService_Rules(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Rules(context.Background(), f.tenantID, AssociationQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Transactions)
	assert.Equal(t, 0.25, result.MinSupport)
	assert.Equal(t, 0.6, result.MinConfidence)
	assert.False(t, result.Cached)
	require.Len(t, result.Rules, 2)

	seen := map[string]string{}
	for _, r := range result.Rules {
		require.Len(t, r.Antecedent, 1)
		require.Len(t, r.Consequent, 1)
		seen[r.Antecedent[0].Name] = r.Consequent[0].Name
		assert.InDelta(t, 2.0/3.0, r.Support, 1e-9)
		assert.InDelta(t, 1.0, r.Confidence, 1e-9)
		assert.InDelta(t, 1.5, r.Lift, 1e-9)
	}
	assert.Equal(t, map[string]string{"Widget": "Gadget", "Gadget": "Widget"}, seen)
}

func TestAssociationService_CachesPerThresholds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Rules(ctx, f.tenantID, AssociationQuery{})
	require.NoError(t, err)
	cached, err := f.svc.Rules(ctx, f.tenantID, AssociationQuery{})
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Len(t, cached.Rules, 2)
	f.baskets.AssertNumberOfCalls(t, "OrderLines", 1)

	refreshed, err := f.svc.Rules(ctx, f.tenantID, AssociationQuery{Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.Cached)
	f.baskets.AssertNumberOfCalls(t, "OrderLines", 2)

	strict := 0.9
	_, err = f.svc.Rules(ctx, f.tenantID, AssociationQuery{MinSupport: &strict})
	require.NoError(t, err)
	f.baskets.AssertNumberOfCalls(t, "OrderLines", 3)
	assert.Len(t, f.cache.data, 2)
	for _, ttl := range f.cache.ttls {
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestAssociationService_RejectsBadThresholds(t *testing.T) {
	f := newFixture(t)
	tooHigh := 1.5

	_, err := f.svc.Rules(context.Background(), f.tenantID, AssociationQuery{MinConfidence: &tooHigh})
	assert.ErrorIs(t, err, shared.NewDomainError("INVALID_MIN_CONFIDENCE", ""))
	f.baskets.AssertNotCalled(t, "OrderLines", mock.Anything, mock.Anything)
}

func TestAssociationService_NoOrders(t *testing.T) {
	baskets := new(mockBasketRepo)
	baskets.On("OrderLines", mock.Anything, mock.Anything).Return([]analytics.OrderLine{}, nil)
	svc := NewAssociationService(baskets, new(mockProductRepo), config.MiningConfig{}, zap.NewNop())

	result, err := svc.Rules(context.Background(), uuid.New(), AssociationQuery{})
	require.NoError(t, err)
	assert.Zero(t, result.Transactions)
	assert.Empty(t, result.Rules)
}

func TestAssociationService_Export(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), f.tenantID, AssociationQuery{}, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Rules", "Summary"}, wb.GetSheetList())
	rows, err := wb.GetRows("Rules")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Antecedent", "Consequent", "Support", "Confidence", "Lift"}, rows[0])
	assert.ElementsMatch(t, []string{"Widget", "Gadget"}, []string{rows[1][0], rows[2][0]})

	transactions, err := wb.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", transactions)
}
