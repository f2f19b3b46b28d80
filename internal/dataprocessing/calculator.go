package dataprocessing

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Calculator derives Revenue = Units Sold × Price for every record.
type Calculator struct {
	logger *slog.Logger
}

// NewCalculator creates a new calculator
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// Calculate sets Revenue on every record in place. The first record that is
// missing a column or holds a non-numeric value aborts the whole dataset.
func (c *Calculator) Calculate(ctx context.Context, ds *domain.Dataset) error {
	// with rows, errors surface row by row: units lookup, units value, then price
	if ds.Len() == 0 {
		for _, col := range []string{domain.UnitsSoldColumn, domain.PriceColumn} {
			if !slices.Contains(ds.Columns, col) {
				return errors.NewMissingColumnError(col, 0)
			}
		}
	}

	// parse everything before mutating so a bad row leaves the dataset untouched
	type operands struct{ units, price float64 }
	parsed := make([]operands, len(ds.Records))
	for i, rec := range ds.Records {
		row := i + 1
		units, err := parseField(rec, domain.UnitsSoldColumn, row)
		if err != nil {
			return err
		}
		price, err := parseField(rec, domain.PriceColumn, row)
		if err != nil {
			return err
		}
		parsed[i] = operands{units: units, price: price}
	}

	for i, rec := range ds.Records {
		rec.SetRevenue(parsed[i].units, parsed[i].price, parsed[i].units*parsed[i].price)
	}
	ds.EnsureColumn(domain.RevenueColumn)

	c.logger.InfoContext(ctx, "Revenue calculated",
		slog.Int("record_count", ds.Len()),
		slog.Float64("total_revenue", ds.TotalRevenue()))

	return nil
}

func parseField(rec *domain.Record, column string, row int) (float64, error) {
	raw, ok := rec.Get(column)
	if !ok {
		return 0, errors.NewMissingColumnError(column, row)
	}

	v, err := ParseNumber(raw)
	if err != nil {
		return 0, errors.NewValueError(column, row, err)
	}
	return v, nil
}

// ParseNumber parses integer, decimal or exponent text, ignoring surrounding
// whitespace. Values beyond float64 range become ±Inf.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if lower := strings.ToLower(strings.TrimLeft(s, "+-")); strings.HasPrefix(lower, "0x") {
		return 0, fmt.Errorf("could not convert string to float: '%s'", raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if stderrors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("could not convert string to float: '%s'", raw)
	}
	return v, nil
}
