package dataprocessing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/errors"
	"salescli/internal/shared/testutil"
	"salescli/pkg/contracts/domain"
)

func newDataset(t *testing.T, header []string, rows ...[]string) *domain.Dataset {
	t.Helper()

	ds := &domain.Dataset{Columns: header}
	for _, row := range rows {
		rec, err := domain.NewRecord(header, row)
		require.NoError(t, err)
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

func TestCalculator_Calculate(t *testing.T) {
	ds := newDataset(t, []string{"Item", "Units Sold", "Price"},
		[]string{"Widget", "10", "2.5"},
		[]string{"Gadget", "4", "9.0"},
	)

	logger, handler := testutil.NewTestLogger(t)
	require.NoError(t, NewCalculator(logger).Calculate(context.Background(), ds))

	assert.Equal(t, 25.0, ds.Records[0].Revenue)
	assert.Equal(t, 36.0, ds.Records[1].Revenue)
	assert.Equal(t, 61.0, ds.TotalRevenue())
	assert.Equal(t, []string{"Item", "Units Sold", "Price", "Revenue"}, ds.Columns)
	for _, rec := range ds.Records {
		assert.Equal(t, []string{"Item", "Units Sold", "Price", "Revenue"}, rec.Keys())
	}

	item, _ := ds.Records[1].Get("Item")
	assert.Equal(t, "Gadget", item, "original fields untouched")
	testutil.AssertNoErrors(t, handler)
}

func TestCalculator_ExactProducts(t *testing.T) {
	rows := [][]string{
		{"0.1", "0.2"},
		{"3", "0.1"},
		{" 7 ", "1e3"},
		{"-2", "0.5"},
		{"1.7976931348623157e308", "10"},
	}
	ds := newDataset(t, []string{"Units Sold", "Price"}, rows...)

	require.NoError(t, NewCalculator(nil).Calculate(context.Background(), ds))

	// typed operands so the products round like the runtime ones
	tenth, fifth, three := 0.1, 0.2, 3.0
	assert.Equal(t, tenth*fifth, ds.Records[0].Revenue)
	assert.Equal(t, 0.020000000000000004, ds.Records[0].Revenue)
	assert.Equal(t, three*tenth, ds.Records[1].Revenue)
	assert.Equal(t, 0.30000000000000004, ds.Records[1].Revenue)
	assert.Equal(t, 7000.0, ds.Records[2].Revenue)
	assert.Equal(t, -1.0, ds.Records[3].Revenue)
	assert.True(t, math.IsInf(ds.Records[4].Revenue, 1))
}

func TestCalculator_OverwritesExistingRevenue(t *testing.T) {
	ds := newDataset(t, []string{"Revenue", "Units Sold", "Price"},
		[]string{"999", "2", "3"},
	)

	require.NoError(t, NewCalculator(nil).Calculate(context.Background(), ds))

	assert.Equal(t, 6.0, ds.Records[0].Revenue)
	assert.Equal(t, []string{"Revenue", "Units Sold", "Price"}, ds.Columns)
	assert.Equal(t, []string{"Revenue", "Units Sold", "Price"}, ds.Records[0].Keys())
}

func TestCalculator_EmptyDataset(t *testing.T) {
	ds := newDataset(t, []string{"Item", "Units Sold", "Price"})

	require.NoError(t, NewCalculator(nil).Calculate(context.Background(), ds))

	assert.Equal(t, []string{"Item", "Units Sold", "Price", "Revenue"}, ds.Header())
	assert.Equal(t, 0.0, ds.TotalRevenue())
}

func TestCalculator_MissingColumn(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		rows    [][]string
		missing string
	}{
		{name: "no price", header: []string{"Item", "Units Sold"}, rows: [][]string{{"Widget", "10"}}, missing: "Price"},
		{name: "no units", header: []string{"Item", "Price"}, rows: [][]string{{"Widget", "2"}}, missing: "Units Sold"},
		{name: "neither reports units first", header: []string{"Item"}, rows: [][]string{{"Widget"}}, missing: "Units Sold"},
		{name: "empty dataset still checked", header: []string{"Item", "Units Sold"}, missing: "Price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := newDataset(t, tt.header, tt.rows...)

			err := NewCalculator(nil).Calculate(context.Background(), ds)

			pe, ok := errors.AsPipelineError(err)
			require.True(t, ok)
			assert.Equal(t, errors.KindSchema, pe.Kind)
			assert.Equal(t, tt.missing, pe.Column)
		})
	}
}

func TestCalculator_NonNumericAbortsWithoutMutation(t *testing.T) {
	ds := newDataset(t, []string{"Item", "Units Sold", "Price"},
		[]string{"Widget", "10", "2.5"},
		[]string{"Gadget", "abc", "9.0"},
	)

	err := NewCalculator(nil).Calculate(context.Background(), ds)

	pe, ok := errors.AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindValue, pe.Kind)
	assert.Equal(t, "Units Sold", pe.Column)
	assert.Equal(t, 2, pe.Row)
	assert.Contains(t, errors.ConsoleMessage(err), "could not convert string to float: 'abc'")

	assert.False(t, ds.Records[0].HasRevenue)
	assert.Equal(t, []string{"Item", "Units Sold", "Price"}, ds.Columns)
}

func TestCalculator_ErrorsFollowRowOrder(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		kind   errors.Kind
		column string
		row    int
	}{
		{
			name:   "bad units before absent price",
			header: []string{"Item", "Units Sold"},
			rows:   [][]string{{"Widget", "abc"}},
			kind:   errors.KindValue,
			column: "Units Sold",
			row:    1,
		},
		{
			name:   "absent price before later bad units",
			header: []string{"Item", "Units Sold"},
			rows:   [][]string{{"Widget", "10"}, {"Gadget", "abc"}},
			kind:   errors.KindSchema,
			column: "Price",
			row:    1,
		},
		{
			name:   "bad price on first row before bad units on second",
			header: []string{"Item", "Units Sold", "Price"},
			rows:   [][]string{{"Widget", "10", "x"}, {"Gadget", "abc", "9"}},
			kind:   errors.KindValue,
			column: "Price",
			row:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := newDataset(t, tt.header, tt.rows...)

			err := NewCalculator(nil).Calculate(context.Background(), ds)

			pe, ok := errors.AsPipelineError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, tt.column, pe.Column)
			assert.Equal(t, tt.row, pe.Row)
		})
	}
}

func TestParseNumber_ErrorText(t *testing.T) {
	_, err := ParseNumber("abc")
	require.Error(t, err)
	assert.Equal(t, "could not convert string to float: 'abc'", err.Error())
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{input: "10", expected: 10},
		{input: "2.5", expected: 2.5},
		{input: " 9.0\t", expected: 9},
		{input: "-3", expected: -3},
		{input: "+4", expected: 4},
		{input: "1e3", expected: 1000},
		{input: ".5", expected: 0.5},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "1,000", wantErr: true},
		{input: "0x10", wantErr: true},
		{input: "-0X1p4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
