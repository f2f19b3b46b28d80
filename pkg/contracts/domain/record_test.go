package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	r, err := NewRecord([]string{"Item", "Units Sold", "Price"}, []string{"Widget", "10", "2.5"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Item", "Units Sold", "Price"}, r.Keys())
	v, ok := r.Get("Item")
	assert.True(t, ok)
	assert.Equal(t, "Widget", v)

	_, ok = r.Get("Missing")
	assert.False(t, ok)
}

func TestNewRecord_FieldCountMismatch(t *testing.T) {
	_, err := NewRecord([]string{"a", "b"}, []string{"1"})
	assert.Error(t, err)
}

func TestRecord_SetRevenueDoesNotLeakIntoSharedHeader(t *testing.T) {
	header := make([]string, 0, 8)
	header = append(header, "Units Sold", "Price")

	first, err := NewRecord(header, []string{"1", "2"})
	require.NoError(t, err)
	second, err := NewRecord(header, []string{"3", "4"})
	require.NoError(t, err)

	first.SetRevenue(1, 2, 2)

	assert.Equal(t, []string{"Units Sold", "Price", "Revenue"}, first.Keys())
	assert.Equal(t, []string{"Units Sold", "Price"}, second.Keys())
	assert.Equal(t, []string{"Units Sold", "Price"}, header)
}

func TestRecord_SetRevenueKeepsExistingPosition(t *testing.T) {
	r, err := NewRecord([]string{"Revenue", "Units Sold", "Price"}, []string{"999", "2", "3"})
	require.NoError(t, err)

	r.SetRevenue(2, 3, 6)

	assert.Equal(t, []string{"Revenue", "Units Sold", "Price"}, r.Keys())
	assert.True(t, r.HasRevenue)
	assert.Equal(t, 6.0, r.Revenue)
}

func TestDataset_HeaderAndTotals(t *testing.T) {
	ds := &Dataset{Columns: []string{"Units Sold", "Price"}}
	assert.Equal(t, []string{"Units Sold", "Price"}, ds.Header())

	ds.EnsureColumn(RevenueColumn)
	ds.EnsureColumn(RevenueColumn)
	assert.Equal(t, []string{"Units Sold", "Price", "Revenue"}, ds.Header())

	for _, vals := range [][]string{{"10", "2.5"}, {"4", "9.0"}} {
		r, err := NewRecord([]string{"Units Sold", "Price"}, vals)
		require.NoError(t, err)
		ds.Records = append(ds.Records, r)
	}
	ds.Records[0].SetRevenue(10, 2.5, 25)
	ds.Records[1].SetRevenue(4, 9, 36)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 61.0, ds.TotalRevenue())
	assert.Equal(t, []string{"Units Sold", "Price", "Revenue"}, ds.Header())
}

func TestNewReport(t *testing.T) {
	ds := &Dataset{}
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)

	report := NewReport(ds, at)

	assert.Equal(t, 0, report.RecordCount)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, "2025-03-04 05:06:07", report.ProcessingTime())
}
