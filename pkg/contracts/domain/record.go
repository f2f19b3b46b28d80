package domain

import (
	"fmt"
	"slices"
)

// Well-known sales columns
const (
	UnitsSoldColumn = "Units Sold"
	PriceColumn     = "Price"
	RevenueColumn   = "Revenue"
)

// Record is one row of a sales file keyed by column name.
// Keys keep the input column order; Revenue is appended last once calculated.
type Record struct {
	keys   []string
	values map[string]string

	// Parsed operands and derived value, valid once HasRevenue is true
	UnitsSold  float64
	Price      float64
	Revenue    float64
	HasRevenue bool
}

// NewRecord pairs header columns with one row of values.
func NewRecord(columns, values []string) (*Record, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(columns), len(values))
	}

	r := &Record{
		keys:   columns,
		values: make(map[string]string, len(columns)),
	}
	for i, col := range columns {
		r.values[col] = values[i]
	}
	return r, nil
}

// Keys returns the record's column names in order.
func (r *Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Get returns the text value of a column.
func (r *Record) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// SetRevenue stores the derived revenue. An existing Revenue column keeps its position.
func (r *Record) SetRevenue(unitsSold, price, revenue float64) {
	if _, ok := r.values[RevenueColumn]; !ok {
		// header slice is shared between records, clip so append copies
		r.keys = append(slices.Clip(r.keys), RevenueColumn)
		r.values[RevenueColumn] = ""
	}
	r.UnitsSold = unitsSold
	r.Price = price
	r.Revenue = revenue
	r.HasRevenue = true
}

// Dataset is the ordered collection of records for one run.
type Dataset struct {
	// Columns is the input header, extended with Revenue after calculation
	Columns []string
	Records []*Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Header returns the output column order: the first record's keys, or the
// dataset columns when there are no records.
func (d *Dataset) Header() []string {
	if len(d.Records) > 0 {
		return d.Records[0].Keys()
	}
	return slices.Clone(d.Columns)
}

// EnsureColumn appends a column to the dataset header if absent.
func (d *Dataset) EnsureColumn(column string) {
	if !slices.Contains(d.Columns, column) {
		d.Columns = append(slices.Clip(d.Columns), column)
	}
}

// TotalRevenue sums Revenue in record order.
func (d *Dataset) TotalRevenue() float64 {
	var total float64
	for _, r := range d.Records {
		total += r.Revenue
	}
	return total
}
