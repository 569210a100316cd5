package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
	tp.EnableSpanProfiles()
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased")
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartServiceSpan(context.Background(), "AnalyticsService", "Associations")
	assert.NotEmpty(t, TraceID(ctx))
	EndSpan(span, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "AnalyticsService.Associations", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	assert.Empty(t, TraceID(context.Background()))
}

func TestDBTracingPlugin(t *testing.T) {
	type widget struct {
		ID   uint
		Name string
	}

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	plugin := NewDBTracingPlugin(config.TelemetryConfig{DBSlowQueryThresh: time.Nanosecond}, zap.NewNop())
	assert.Equal(t, "erp:db_tracing", plugin.Name())
	require.NoError(t, db.Use(plugin))

	ctx, span := tp.Tracer("test").Start(context.Background(), "parent")
	require.NoError(t, db.WithContext(ctx).Create(&widget{Name: "a"}).Error)
	span.End()
	assert.GreaterOrEqual(t, len(recorder.Ended()), 2, "otelgorm should record a child span")

	t.Run("annotate marks slow queries and errors", func(t *testing.T) {
		ctx, span := tp.Tracer("test").Start(context.Background(), "query")
		tx := db.Session(&gorm.Session{NewDB: true})
		tx.Statement.Context = markedAt(ctx, time.Now().Add(-time.Second))
		tx.Statement.Table = "widgets"
		tx.Statement.RowsAffected = 3
		tx.Error = errors.New("deadlock detected")

		plugin.annotate(tx)
		span.End()

		ended := recorder.Ended()
		got := ended[len(ended)-1]
		attrs := map[string]bool{}
		for _, kv := range got.Attributes() {
			attrs[string(kv.Key)] = true
		}
		assert.True(t, attrs["db.slow_query"])
		assert.True(t, attrs["db.rows_affected"])
		assert.True(t, attrs["db.sql.table"])
		assert.Equal(t, codes.Error, got.Status().Code)
	})
}

func markedAt(ctx context.Context, at time.Time) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, at)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(nil)

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))

	m.ObserveRequest("GET", "/api/v1/catalog/products", "200", 10*time.Millisecond)
	m.ObservePosting("adjustment", nil)
	m.ObservePosting("adjustment", errors.New("insufficient"))
	m.ObserveMining(time.Second, false, 4)
	m.ObserveReminder(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/catalog/products", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockPostings.WithLabelValues("adjustment", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.miningRules))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "erp_inventory_stock_postings_total"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RequestStarted()()
	m.ObserveRequest("GET", "/", "200", time.Millisecond)
	m.ObservePosting("x", nil)
	m.ObserveMining(time.Millisecond, true, 0)
	m.ObserveReminder(nil)
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Route":      "/api/v1/x",
		"request_id": "abc",
		"tenant-id":  strings.Repeat("a", 200),
		"empty":      "",
	})
	require.Len(t, pairs, 4)
	assert.Equal(t, "route", pairs[0])
	assert.Equal(t, "tenant_id", pairs[2])
	assert.Len(t, pairs[3], MaxLabelValueLength)

	called := false
	WithProfilingLabels(context.Background(), OperationLabels("mining", nil), func(context.Context) { called = true })
	assert.True(t, called)
}

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(config.ProfilingConfig{}, "erp", zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())

	_, err = NewProfiler(config.ProfilingConfig{Enabled: true}, "erp", zap.NewNop())
	assert.Error(t, err)
}
