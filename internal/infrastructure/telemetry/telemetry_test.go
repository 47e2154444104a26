package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/codops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(nil)
	require.ErrorIs(t, err, telemetry.ErrMeterNil)
	assert.Nil(t, bm)
}

func TestBusinessMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	bm, err := telemetry.NewBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordShipmentArrived(ctx, "CN", "KE", 120, 18)
	bm.RecordShipmentArrived(ctx, "KE", "UG", 30, 0)
	bm.RecordStockMovement(ctx, "transfer", 120)
	bm.RecordStockMovement(ctx, "decrease", 10)
	bm.RecordRemitUpserted(ctx, "KE", false, decimal.NewFromInt(350))
	bm.RecordRemitUpserted(ctx, "KE", true, decimal.NewFromInt(300))

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, metrics["cod_shipments_arrived_total"]))
	assert.Equal(t, int64(150), sumOf(t, metrics["cod_shipment_units_arrived_total"]))
	assert.Equal(t, int64(2), sumOf(t, metrics["cod_stock_movements_total"]))
	assert.Equal(t, int64(130), sumOf(t, metrics["cod_stock_movement_units_total"]))
	assert.Equal(t, int64(2), sumOf(t, metrics["cod_period_remits_upserted_total"]))

	transit, ok := metrics["cod_shipment_transit_days"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, transit.DataPoints, 1)
	assert.Equal(t, uint64(1), transit.DataPoints[0].Count)

	profit, ok := metrics["cod_period_remit_profit_usd"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, profit.DataPoints, 1)
	assert.InDelta(t, 650.0, profit.DataPoints[0].Sum, 0.0001)
}

func TestStartSpan_RecordError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	_, span := telemetry.StartSpan(context.Background(), "backup.snapshot",
		telemetry.WithAttribute("tag", "pre-release"),
		telemetry.WithAttribute("size", 42),
	)
	telemetry.RecordError(span, errors.New("disk full"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "backup.snapshot", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Attributes(), 2)
}

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{}, logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{}, logger)
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.False(t, lp.ZapCore(zap.InfoLevel).Enabled(zap.ErrorLevel))
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddress(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "cod"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address")
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	// nil db is never touched when tracing is off
	assert.NoError(t, telemetry.RegisterDBTracing(nil, telemetry.DBTracingConfig{}, zap.NewNop()))
}
