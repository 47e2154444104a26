package telemetry

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound variables in span statements
	SlowQueryThresh time.Duration
	DBSystem        string // "sqlite" or "postgresql"
}

const queryStartKey = "cod:query_start"

// RegisterDBTracing installs the otelgorm plugin and a slow query callback
// that logs and annotates the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if cfg.SlowQueryThresh > 0 {
		if err := registerSlowQueryCallbacks(db, cfg.SlowQueryThresh, logger); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, thresh time.Duration, logger *zap.Logger) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < thresh {
			return
		}

		span := trace.SpanFromContext(tx.Statement.Context)
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.String("db.table", tx.Statement.Table),
			attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
		))
		logger.Warn("Slow query",
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
		)
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("cod_slow:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("cod_slow:after_create", after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("cod_slow:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("cod_slow:after_query", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("cod_slow:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("cod_slow:after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("cod_slow:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("cod_slow:after_delete", after); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("cod_slow:before_raw", before); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("cod_slow:after_raw", after)
}
