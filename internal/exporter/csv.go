package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteDataset writes a header row followed by one row per record. Column
// order follows the first record's keys.
func (w *CSVWriter) WriteDataset(ctx context.Context, ds *domain.Dataset, filePath string) error {
	header := ds.Header()

	rows := make([][]string, 0, ds.Len())
	for _, rec := range ds.Records {
		rows = append(rows, recordRow(rec, header))
	}

	if err := w.WriteCSV(ctx, filePath, header, rows); err != nil {
		return errors.NewWriteError(errors.StageWrite, filePath, err)
	}
	return nil
}

// WriteCSV truncates filePath and writes headers and records to it
func (w *CSVWriter) WriteCSV(ctx context.Context, filePath string, headers []string, records [][]string) (err error) {
	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(records)))

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	writer := csv.NewWriter(file)
	writer.UseCRLF = true

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// recordRow renders a record in header order; a calculated Revenue is
// rendered from its float value.
func recordRow(rec *domain.Record, header []string) []string {
	row := make([]string, len(header))
	for i, col := range header {
		if col == domain.RevenueColumn && rec.HasRevenue {
			row[i] = formatFloat(rec.Revenue)
			continue
		}
		row[i], _ = rec.Get(col)
	}
	return row
}
