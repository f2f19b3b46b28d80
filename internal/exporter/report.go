package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// reportDocument is the on-disk shape of report.txt; field order is the key order
type reportDocument struct {
	ProcessingTime        string      `json:"Processing Time"`
	TotalRecordsProcessed int         `json:"Total Records Processed"`
	TotalRevenue          json.Number `json:"Total Revenue"`
}

// ReportWriter aggregates a dataset and writes the run summary
type ReportWriter struct {
	clock     func() time.Time
	validator *validator.Validate
	logger    *slog.Logger
}

// NewReportWriter creates a report writer; clock stamps the report
func NewReportWriter(clock func() time.Time, logger *slog.Logger) *ReportWriter {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		clock:     clock,
		validator: validator.New(),
		logger:    logger,
	}
}

// Write builds the report for ds at the current clock time and writes it to
// filePath as indented JSON.
func (w *ReportWriter) Write(ctx context.Context, ds *domain.Dataset, filePath string) (*domain.Report, error) {
	report := domain.NewReport(ds, w.clock())

	data, err := w.Marshal(report)
	if err != nil {
		return nil, errors.NewWriteError(errors.StageReport, filePath, err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, errors.NewWriteError(errors.StageReport, filePath, err)
	}

	w.logger.InfoContext(ctx, "Report written",
		slog.String("file_path", filePath),
		slog.Int("record_count", report.RecordCount),
		slog.Float64("total_revenue", report.TotalRevenue))

	return report, nil
}

// Marshal renders a report as 4-space indented JSON without a trailing newline
func (w *ReportWriter) Marshal(report *domain.Report) ([]byte, error) {
	if err := w.validator.Struct(report); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}
	if math.IsNaN(report.TotalRevenue) || math.IsInf(report.TotalRevenue, 0) {
		return nil, fmt.Errorf("%w: total revenue %v", errors.ErrNonFinite, report.TotalRevenue)
	}

	doc := reportDocument{
		ProcessingTime:        report.ProcessingTime(),
		TotalRecordsProcessed: report.RecordCount,
		TotalRevenue:          json.Number(formatFloat(report.TotalRevenue)),
	}
	return json.MarshalIndent(doc, "", "    ")
}
