package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"salescli/internal/config"
	"salescli/internal/errors"
	"salescli/internal/infrastructure"
	"salescli/internal/operations"
	"salescli/pkg/contracts"
)

func main() {
	paths, err := config.GetPaths()
	if err != nil {
		fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, paths))
}

// run processes one sales file and returns the process exit status. Progress
// and error lines go to stdout, structured logs and traces to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, paths *config.Paths) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, errors.ConsoleMessage(errors.NewInvocationError(len(args))))
		return 1
	}
	inputPath := args[0]

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(stderr, nil)).Warn("Failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stdout, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "salesreport starting",
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("input", inputPath))

	telemetry, err := infrastructure.InitTelemetry(ctx, cfg.Telemetry, stderr, logger.Logger)
	if err != nil {
		logger.WarnContext(ctx, "Telemetry disabled", slog.String("error", err.Error()))
		telemetry = infrastructure.NoopTelemetry()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	pipeline, err := operations.NewPipeline(operations.Env{
		Paths:   paths,
		Clock:   time.Now,
		Console: stdout,
		Logger:  logger.Logger,
		Tracer:  telemetry.Tracer,
		Metrics: telemetry.Metrics,
	})
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	if _, err := pipeline.Run(ctx, inputPath); err != nil {
		fmt.Fprintln(stdout, errors.ConsoleMessage(err))
		return errors.ExitCode(err)
	}
	return 0
}
