package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"salescli/internal/errors"
	"salescli/internal/validation"
	"salescli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads a sales file into a Dataset.
type Reader struct {
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewReader creates a new reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Read loads the file at path. Files ending in .xlsx are read from their
// first sheet, everything else as comma-separated text with a header row.
func (r *Reader) Read(ctx context.Context, path string) (*domain.Dataset, error) {
	format, err := r.validator.ValidateInputFile(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if format == validation.FormatWorkbook {
		rows, err = readWorkbook(path)
	} else {
		rows, err = readDelimited(path)
	}
	if err != nil {
		return nil, errors.NewReadError(path, err)
	}

	ds, err := buildDataset(rows)
	if err != nil {
		return nil, errors.NewReadError(path, err)
	}

	r.logger.InfoContext(ctx, "Sales file loaded",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("columns", len(ds.Columns)),
		slog.Int("record_count", ds.Len()))

	return ds, nil
}

func readDelimited(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	// every row must match the header width
	reader.FieldsPerRecord = 0
	// bare quotes inside unquoted fields, such as 24" for inches, are kept as text
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if stderrors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: %w", errors.ErrFieldCount, err)
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	// drop blank rows, pad rows whose trailing empty cells the workbook trimmed
	var out [][]string
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(out) > 0 {
			width := len(out[0])
			if len(row) > width {
				return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", errors.ErrFieldCount, i+1, len(row), width)
			}
			for len(row) < width {
				row = append(row, "")
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func buildDataset(rows [][]string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.ErrMissingHeader
	}

	header := rows[0]
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		if seen[col] {
			return nil, fmt.Errorf("%w: %q", errors.ErrDuplicateColumn, col)
		}
		seen[col] = true
	}

	ds := &domain.Dataset{
		Columns: header,
		Records: make([]*domain.Record, 0, len(rows)-1),
	}
	for i, row := range rows[1:] {
		rec, err := domain.NewRecord(header, row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", errors.ErrFieldCount, i+1, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
