package domain

import (
	"time"
)

// ReportTimeLayout is the layout of the report's processing time.
const ReportTimeLayout = "2006-01-02 15:04:05"

// Report summarizes one processing run.
type Report struct {
	GeneratedAt  time.Time `validate:"required"`
	RecordCount  int       `validate:"gte=0"`
	TotalRevenue float64
}

// NewReport aggregates a calculated dataset at the given time.
func NewReport(ds *Dataset, generatedAt time.Time) *Report {
	return &Report{
		GeneratedAt:  generatedAt,
		RecordCount:  ds.Len(),
		TotalRevenue: ds.TotalRevenue(),
	}
}

// ProcessingTime returns GeneratedAt in ReportTimeLayout.
func (r *Report) ProcessingTime() string {
	return r.GeneratedAt.Format(ReportTimeLayout)
}
