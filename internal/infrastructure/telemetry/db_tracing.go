package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracingPlugin is a gorm.Plugin that installs otelgorm and flags slow queries on spans
type DBTracingPlugin struct {
	logFullSQL      bool
	slowQueryThresh time.Duration
	logger          *zap.Logger
}

// NewDBTracingPlugin creates the plugin from the telemetry config
func NewDBTracingPlugin(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracingPlugin {
	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{
		logFullSQL:      cfg.DBLogFullSQL,
		slowQueryThresh: thresh,
		logger:          logger,
	}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "erp:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !p.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("erp_timing:before_create", markStart) },
		func() error { return cb.Query().Before("gorm:query").Register("erp_timing:before_query", markStart) },
		func() error { return cb.Update().Before("gorm:update").Register("erp_timing:before_update", markStart) },
		func() error { return cb.Delete().Before("gorm:delete").Register("erp_timing:before_delete", markStart) },
		func() error { return cb.Row().Before("gorm:row").Register("erp_timing:before_row", markStart) },
		func() error { return cb.Raw().Before("gorm:raw").Register("erp_timing:before_raw", markStart) },
		func() error { return cb.Create().After("gorm:create").Before("otel:after_create").Register("erp_timing:after_create", p.annotate) },
		func() error { return cb.Query().After("gorm:query").Before("otel:after_query").Register("erp_timing:after_query", p.annotate) },
		func() error { return cb.Update().After("gorm:update").Before("otel:after_update").Register("erp_timing:after_update", p.annotate) },
		func() error { return cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("erp_timing:after_delete", p.annotate) },
		func() error { return cb.Row().After("gorm:row").Before("otel:after_row").Register("erp_timing:after_row", p.annotate) },
		func() error { return cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("erp_timing:after_raw", p.annotate) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.logFullSQL),
		zap.Duration("slow_query_threshold", p.slowQueryThresh),
	)
	return nil
}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// annotate adds row count, table, error status and slow-query markers to the active span
func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.slowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("threshold_ms", p.slowQueryThresh.Milliseconds()),
			))
		}
	}
}
