package main

import (
	"context"

	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/dotmart/backend/internal/infrastructure/logger"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// observability holds the OpenTelemetry providers and the profiler for the process
type observability struct {
	tracer   *telemetry.TracerProvider
	meters   *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler

	meter  metric.Meter
	logger *zap.Logger
}

// setupTelemetry starts tracing, metrics, log export and profiling. A provider
// that fails to start is replaced by its disabled form so the API still serves.
func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *observability {
	tc := cfg.Telemetry
	o := &observability{logger: log}

	traceCfg := telemetry.Config{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}
	tp, err := telemetry.NewTracerProvider(ctx, traceCfg, log)
	if err != nil {
		log.Warn("Failed to initialize tracing", zap.Error(err))
		traceCfg.Enabled = false
		tp, _ = telemetry.NewTracerProvider(ctx, traceCfg, log)
	}
	o.tracer = tp

	metricsCfg := telemetry.MetricsConfig{
		Enabled:           tc.Enabled && tc.MetricsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ExportInterval:    tc.MetricsInterval,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}
	mp, err := telemetry.NewMeterProvider(ctx, metricsCfg, log)
	if err != nil {
		log.Warn("Failed to initialize metrics", zap.Error(err))
		metricsCfg.Enabled = false
		mp, _ = telemetry.NewMeterProvider(ctx, metricsCfg, log)
	}
	o.meters = mp
	o.meter = mp.Meter(tc.ServiceName)

	logsCfg := telemetry.LogsConfig{
		Enabled:           tc.Enabled && tc.LogsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}
	lp, err := telemetry.NewLoggerProvider(ctx, logsCfg, log)
	if err != nil {
		log.Warn("Failed to initialize log export", zap.Error(err))
		lp = nil
	}
	o.logs = lp
	o.logger = telemetry.WithOTELExport(log, tc.ServiceName, lp, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         tc.ProfilingEnabled,
		ServerAddress:   tc.ProfilingServer,
		ApplicationName: tc.ServiceName,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
		profiler, _ = telemetry.NewProfiler(telemetry.ProfilerConfig{}, log)
	} else if tc.ProfilingEnabled {
		tp.EnableSpanProfiles()
	}
	o.profiler = profiler

	return o
}

// shutdown flushes every provider. Errors are logged, not returned.
func (o *observability) shutdown(log *zap.Logger) {
	ctx := context.Background()
	if err := o.profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := o.logs.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down log export", zap.Error(err))
	}
	if err := o.meters.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down metrics", zap.Error(err))
	}
	if err := o.tracer.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down tracing", zap.Error(err))
	}
}
