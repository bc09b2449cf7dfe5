package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/dotmart/backend/internal/domain/order"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
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

func int64Sum(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestCounterAndHistogram(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	c, err := telemetry.NewCounter(meter, "requests", "Requests", "{request}")
	require.NoError(t, err)
	c.Inc(context.Background())
	c.Add(context.Background(), 4)

	h, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:       "latency",
		Unit:       "s",
		Boundaries: telemetry.HTTPDurationBuckets,
	})
	require.NoError(t, err)
	h.RecordDuration(context.Background(), 150*time.Millisecond)

	metrics := collect(t, reader)
	assert.Equal(t, int64(5), int64Sum(t, metrics["requests"]))

	hist, ok := metrics["latency"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.15, hist.DataPoints[0].Sum, 1e-9)
}

func TestStoreMetrics_HandlesEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("store")

	sm, err := telemetry.NewStoreMetrics(meter)
	require.NoError(t, err)
	assert.Contains(t, sm.EventTypes(), order.EventTypeOrderPlaced)

	o, err := order.NewOrder(uuid.New(), []order.Item{
		{ProductID: uuid.New(), Quantity: 2, Price: decimal.NewFromInt(25)},
	}, decimal.RequireFromString("50.50"), "", "")
	require.NoError(t, err)

	ctx := context.Background()
	for _, evt := range o.PullDomainEvents() {
		require.NoError(t, sm.Handle(ctx, evt))
	}
	require.NoError(t, o.ChangeStatus(order.StatusShipped))
	for _, evt := range o.PullDomainEvents() {
		require.NoError(t, sm.Handle(ctx, evt))
	}

	item, err := cart.NewCartItem(uuid.New(), uuid.New(), 3)
	require.NoError(t, err)
	require.NoError(t, sm.Handle(ctx, cart.NewCartItemAddedEvent(item, 3)))

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), int64Sum(t, metrics["store.orders.placed"]))
	assert.Equal(t, int64(1), int64Sum(t, metrics["store.orders.status_changes"]))
	assert.Equal(t, int64(3), int64Sum(t, metrics["store.cart.items_added"]))

	revenue, ok := metrics["store.orders.revenue"].Data.(metricdata.Sum[float64])
	require.True(t, ok)
	assert.InDelta(t, 50.5, revenue.DataPoints[0].Value, 1e-9)
}

func TestDisabledProviders(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAddress(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "dotmart"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address is required")

	_, err = telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name is required")
}
