package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in span statements
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // postgresql or sqlite
	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus callbacks that mark
// slow queries and errors on the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	cb := db.Callback()
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := slowQueryCallback(cfg.SlowQueryThresh)

	// Callbacks sharing an anchor run in registration order; ours are
	// registered first so the span is still recording when we annotate it.
	registrations := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
		fn       func(*gorm.DB)
	}{
		{"otel_timing:before_query", cb.Query().Before("gorm:query").Register, before},
		{"otel_timing:before_row", cb.Row().Before("gorm:row").Register, before},
		{"otel_timing:before_raw", cb.Raw().Before("gorm:raw").Register, before},
		{"otel_timing:before_create", cb.Create().Before("gorm:create").Register, before},
		{"otel_slow_query:after_query", cb.Query().After("gorm:query").Register, after},
		{"otel_slow_query:after_row", cb.Row().After("gorm:row").Register, after},
		{"otel_slow_query:after_raw", cb.Raw().After("gorm:raw").Register, after},
		{"otel_slow_query:after_create", cb.Create().After("gorm:create").Register, after},
	}
	for _, r := range registrations {
		if err := r.register(r.name, r.fn); err != nil {
			return err
		}
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.Provider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.Provider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

func slowQueryCallback(threshold time.Duration) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		if tx.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
		}
		span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))

		if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, tx.Error.Error())
			span.RecordError(tx.Error)
		}

		if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
			if elapsed := time.Since(start); elapsed > threshold {
				span.SetAttributes(
					attribute.Bool("db.slow_query", true),
					attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
				)
				span.AddEvent("slow_query_warning", trace.WithAttributes(
					attribute.Int64("duration_ms", elapsed.Milliseconds()),
					attribute.Int64("threshold_ms", threshold.Milliseconds()),
				))
			}
		}
	}
}
