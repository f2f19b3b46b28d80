package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/config"
)

func TestInitTelemetry_Disabled(t *testing.T) {
	var traces bytes.Buffer
	tel, err := InitTelemetry(context.Background(), config.Default().Telemetry, &traces, nil)
	require.NoError(t, err)

	ctx, span := tel.Tracer.Start(context.Background(), "read")
	tel.Metrics.RecordsProcessed.Add(ctx, 3)
	tel.Metrics.RecordStage(ctx, "read", time.Millisecond, nil)
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))
	assert.Empty(t, traces.String())
}

func TestInitTelemetry_StdoutTraces(t *testing.T) {
	var traces bytes.Buffer
	cfg := config.TelemetryConfig{ServiceName: "salesreport-test", TraceExporter: "stdout"}

	tel, err := InitTelemetry(context.Background(), cfg, &traces, nil)
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), "stage.calculate")
	span.End()
	require.NoError(t, tel.Shutdown(context.Background()))

	assert.Contains(t, traces.String(), "stage.calculate")
	assert.Contains(t, traces.String(), "salesreport-test")
}

func TestInitTelemetry_MetricsTextfile(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "salesreport.prom")
	cfg := config.TelemetryConfig{ServiceName: "salesreport", TraceExporter: "none", MetricsTextfile: textfile}

	tel, err := InitTelemetry(context.Background(), cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	tel.Metrics.RecordsProcessed.Add(ctx, 2)
	tel.Metrics.RevenueTotal.Add(ctx, 61)
	tel.Metrics.RecordStage(ctx, "write", 5*time.Millisecond, errors.New("failed"))

	require.NoError(t, tel.Shutdown(ctx))

	content, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "salesreport_records_processed")
	assert.Contains(t, string(content), "salesreport_revenue_total")
	assert.Contains(t, string(content), "salesreport_stage_duration")
	assert.Contains(t, string(content), `stage="write"`)
}

func TestInitTelemetry_UnsupportedExporter(t *testing.T) {
	_, err := InitTelemetry(context.Background(), config.TelemetryConfig{TraceExporter: "otlp"}, &bytes.Buffer{}, nil)
	assert.ErrorContains(t, err, "unsupported trace exporter")
}

func TestNoopTelemetry(t *testing.T) {
	tel := NoopTelemetry()
	require.NotNil(t, tel.Tracer)
	require.NotNil(t, tel.Metrics)

	ctx, span := tel.Tracer.Start(context.Background(), "stage.write")
	tel.Metrics.RevenueTotal.Add(ctx, 61)
	tel.Metrics.RecordStage(ctx, "write", time.Millisecond, errors.New("disk full"))
	span.End()

	assert.NoError(t, tel.Shutdown(context.Background()))
}
