package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/errors"
	"salescli/internal/exporter"
	"salescli/internal/infrastructure"
	"salescli/pkg/contracts/domain"
)

// Env is the explicit execution context of one run.
type Env struct {
	Paths   *config.Paths
	Clock   func() time.Time
	Console io.Writer
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *infrastructure.RunMetrics
}

// Pipeline runs read → calculate → write → report over one sales file.
type Pipeline struct {
	env        Env
	reader     *dataprocessing.Reader
	calculator *dataprocessing.Calculator
	csvWriter  *exporter.CSVWriter
	reporter   *exporter.ReportWriter
	stages     []*StepState
}

// NewPipeline wires the pipeline components from env. Paths and Console are required.
func NewPipeline(env Env) (*Pipeline, error) {
	if env.Paths == nil {
		return nil, fmt.Errorf("pipeline paths are required")
	}
	if env.Console == nil {
		return nil, fmt.Errorf("pipeline console is required")
	}
	if env.Clock == nil {
		env.Clock = time.Now
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	if env.Tracer == nil {
		env.Tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentScope)
	}
	if env.Metrics == nil {
		env.Metrics = infrastructure.NoopMetrics()
	}

	return &Pipeline{
		env:        env,
		reader:     dataprocessing.NewReader(infrastructure.WithComponent(env.Logger, "reader")),
		calculator: dataprocessing.NewCalculator(infrastructure.WithComponent(env.Logger, "calculator")),
		csvWriter:  exporter.NewCSVWriter(infrastructure.WithComponent(env.Logger, "writer")),
		reporter:   exporter.NewReportWriter(env.Clock, infrastructure.WithComponent(env.Logger, "reporter")),
	}, nil
}

// Run executes every stage in order and stops at the first failure. The
// returned error is always a *errors.PipelineError.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*domain.Report, error) {
	ctx, span := p.env.Tracer.Start(ctx, "pipeline.run")
	defer span.End()

	p.stages = nil
	started := p.env.Clock()
	p.env.Logger.InfoContext(ctx, "Starting sales processing",
		slog.String("input", inputPath),
		slog.String("output_dir", p.env.Paths.OutputDir))

	var ds *domain.Dataset
	var report *domain.Report

	err := p.runStage(ctx, errors.StageRead, func(ctx context.Context) error {
		var err error
		ds, err = p.reader.Read(ctx, inputPath)
		return err
	})
	if err == nil {
		err = p.runStage(ctx, errors.StageCalculate, func(ctx context.Context) error {
			return p.calculator.Calculate(ctx, ds)
		})
	}
	if err == nil {
		err = p.runStage(ctx, errors.StageWrite, func(ctx context.Context) error {
			if err := p.csvWriter.WriteDataset(ctx, ds, p.env.Paths.OutputCSV); err != nil {
				return err
			}
			p.printf("Data successfully written to %s\n", p.env.Paths.DisplayName(p.env.Paths.OutputCSV))
			return nil
		})
	}
	if err == nil {
		err = p.runStage(ctx, errors.StageReport, func(ctx context.Context) error {
			var err error
			report, err = p.reporter.Write(ctx, ds, p.env.Paths.ReportFile)
			if err != nil {
				return err
			}
			p.printf("Report successfully written to %s\n", p.env.Paths.DisplayName(p.env.Paths.ReportFile))
			return nil
		})
	}

	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	p.env.Metrics.RecordsProcessed.Add(ctx, int64(report.RecordCount))
	p.env.Metrics.RevenueTotal.Add(ctx, report.TotalRevenue)

	p.env.Logger.InfoContext(ctx, "Sales processing complete",
		slog.Int("record_count", report.RecordCount),
		slog.Float64("total_revenue", report.TotalRevenue),
		slog.Duration("duration", p.env.Clock().Sub(started)))

	return report, nil
}

// Stages returns the state of every stage started by the last Run
func (p *Pipeline) Stages() []*StepState {
	return p.stages
}

func (p *Pipeline) printf(format string, args ...any) {
	fmt.Fprintf(p.env.Console, format, args...)
}
