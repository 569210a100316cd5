package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	analyticsapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/analytics"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/analytics"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/export"
	"github.com/kainnovads/apukainnovabe-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBaskets struct {
	mu    sync.Mutex
	lines []analytics.OrderLine
	err   error
	calls int
}

func (s *stubBaskets) OrderLines(context.Context, uuid.UUID) ([]analytics.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.lines, s.err
}

func (s *stubBaskets) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubProducts struct {
	testutil.CrudRepository[catalog.Product]
	products []catalog.Product
}

func (s *stubProducts) FindByIDs(context.Context, uuid.UUID, []uuid.UUID) ([]catalog.Product, error) {
	return s.products, nil
}

// jsonCache keeps values as JSON like the redis cache
type jsonCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *jsonCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *jsonCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func newAnalyticsEngine(t *testing.T) (*gin.Engine, *stubBaskets) {
	t.Helper()
	tenantID := testutil.TestTenantID()
	bread, err := catalog.NewProduct(tenantID, "SKU-BREAD", "Bread", "pcs")
	require.NoError(t, err)
	milk, err := catalog.NewProduct(tenantID, "SKU-MILK", "Milk", "pcs")
	require.NoError(t, err)

	baskets := &stubBaskets{}
	for range 3 {
		order := uuid.New()
		baskets.lines = append(baskets.lines,
			analytics.OrderLine{OrderID: order, ProductID: bread.ID},
			analytics.OrderLine{OrderID: order, ProductID: milk.ID})
	}
	products := &stubProducts{products: []catalog.Product{*bread, *milk}}
	svc := analyticsapp.NewAssociationService(baskets, products, config.MiningConfig{}, zap.NewNop(),
		analyticsapp.WithCache(&jsonCache{data: make(map[string][]byte)}, time.Minute))

	h := NewAnalyticsHandler(svc)
	engine := newEngine()
	engine.GET("/analytics/associations", h.GetAssociations)
	engine.GET("/analytics/associations/export", h.ExportAssociations)
	return engine, baskets
}

func TestAnalyticsHandler_GetAssociations(t *testing.T) {
	engine, baskets := newAnalyticsEngine(t)

	get := func(t *testing.T, path string) analyticsapp.AssociationResponse {
		t.Helper()
		w := testutil.PerformRequest(t, engine, http.MethodGet, path, nil, tenantHeaders())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var result analyticsapp.AssociationResponse
		testutil.DecodeResponse(t, w, &result)
		return result
	}

	t.Run("thresholds outside (0, 1] are rejected", func(t *testing.T) {
		for _, query := range []string{"min_support=0", "min_support=1.5", "min_confidence=0", "min_confidence=-0.2"} {
			w := testutil.PerformRequest(t, engine, http.MethodGet, "/analytics/associations?"+query, nil, tenantHeaders())
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
		assert.Zero(t, baskets.Calls(), "invalid thresholds never reach the miner")
	})

	first := get(t, "/analytics/associations")
	assert.False(t, first.Cached)
	assert.Equal(t, 3, first.Transactions)
	require.NotEmpty(t, first.Rules)
	assert.NotEmpty(t, first.Rules[0].Antecedent[0].Name)
	assert.Equal(t, 1, baskets.Calls())

	second := get(t, "/analytics/associations")
	assert.True(t, second.Cached)
	assert.Len(t, second.Rules, len(first.Rules))
	assert.Equal(t, 1, baskets.Calls(), "served from cache")

	refreshed := get(t, "/analytics/associations?refresh=true")
	assert.False(t, refreshed.Cached)
	assert.Equal(t, 2, baskets.Calls(), "refresh recomputes")

	other := get(t, "/analytics/associations?min_support=0.5")
	assert.False(t, other.Cached, "thresholds are part of the cache key")
	assert.Equal(t, 0.5, other.MinSupport)
	assert.Equal(t, 3, baskets.Calls())
}

func TestAnalyticsHandler_ExportAssociations(t *testing.T) {
	engine, baskets := newAnalyticsEngine(t)

	t.Run("workbook download", func(t *testing.T) {
		w := testutil.PerformRequest(t, engine, http.MethodGet, "/analytics/associations/export", nil, tenantHeaders())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="associations-`)
		assert.Equal(t, "PK", w.Body.String()[:2], "xlsx is a zip archive")
	})

	t.Run("invalid thresholds answer with JSON", func(t *testing.T) {
		w := testutil.PerformRequest(t, engine, http.MethodGet, "/analytics/associations/export?min_support=1.5", nil, tenantHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("mining failure answers with JSON", func(t *testing.T) {
		baskets.mu.Lock()
		baskets.err = errors.New("connection reset")
		baskets.mu.Unlock()

		w := testutil.PerformRequest(t, engine, http.MethodGet, "/analytics/associations/export?refresh=true", nil, tenantHeaders())
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Empty(t, w.Header().Get("Content-Disposition"))

		var resp testutil.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_INTERNAL", resp.Error.Code)
	})
}
