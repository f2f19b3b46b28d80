package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"salescli/internal/config"
	"salescli/pkg/contracts"
)

// InstrumentScope names the tracer and meter of this module
const InstrumentScope = "salescli"

// Telemetry holds the tracer and batch metrics of one run.
type Telemetry struct {
	Tracer  trace.Tracer
	Metrics *RunMetrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
	textfile       string
	logger         *slog.Logger
}

// RunMetrics are the instruments recorded by the pipeline
type RunMetrics struct {
	RecordsProcessed metric.Int64Counter
	RevenueTotal     metric.Float64Counter
	StageDuration    metric.Float64Histogram
}

// InitTelemetry sets up tracing and metrics from configuration. Spans go to
// traceOut when the stdout exporter is selected; metrics are gathered into a
// Prometheus registry and written as a textfile on Shutdown.
func InitTelemetry(ctx context.Context, cfg config.TelemetryConfig, traceOut io.Writer, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Telemetry{
		textfile: cfg.MetricsTextfile,
		logger:   logger,
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", contracts.Version),
	)

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOut),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		t.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		)
		t.Tracer = t.tracerProvider.Tracer(InstrumentScope, trace.WithInstrumentationVersion(contracts.Version))
	case "none", "":
		t.Tracer = tracenoop.NewTracerProvider().Tracer(InstrumentScope)
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	var meter metric.Meter
	if cfg.MetricsTextfile != "" {
		t.registry = prometheus.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(t.registry))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		t.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		meter = t.meterProvider.Meter(InstrumentScope, metric.WithInstrumentationVersion(contracts.Version))
	} else {
		meter = metricnoop.NewMeterProvider().Meter(InstrumentScope)
	}

	metrics, err := newRunMetrics(meter)
	if err != nil {
		return nil, err
	}
	t.Metrics = metrics

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_enabled", t.registry != nil))

	return t, nil
}

func newRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	records, err := meter.Int64Counter("salesreport.records.processed",
		metric.WithDescription("Sales records processed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create records counter: %w", err)
	}

	revenue, err := meter.Float64Counter("salesreport.revenue.total",
		metric.WithDescription("Total revenue computed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create revenue counter: %w", err)
	}

	duration, err := meter.Float64Histogram("salesreport.stage.duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stage duration histogram: %w", err)
	}

	return &RunMetrics{
		RecordsProcessed: records,
		RevenueTotal:     revenue,
		StageDuration:    duration,
	}, nil
}

// RecordStage records how long a stage took and whether it failed
func (m *RunMetrics) RecordStage(ctx context.Context, stage string, elapsed time.Duration, err error) {
	m.StageDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("failed", err != nil),
	))
}

// Shutdown flushes spans and writes the metrics textfile if configured
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}

	if t.registry != nil {
		if err := prometheus.WriteToTextfile(t.textfile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		} else {
			t.logger.DebugContext(ctx, "Metrics textfile written", slog.String("path", t.textfile))
		}
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// NoopTelemetry returns a Telemetry whose tracer and metrics discard everything
func NoopTelemetry() *Telemetry {
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(InstrumentScope),
		Metrics: NoopMetrics(),
		logger:  slog.Default(),
	}
}

// NoopMetrics returns instruments that record nothing
func NoopMetrics() *RunMetrics {
	// the noop meter never fails to create instruments
	m, _ := newRunMetrics(metricnoop.NewMeterProvider().Meter(InstrumentScope))
	return m
}
