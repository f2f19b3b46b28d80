// Package exporter writes the artifacts of a processing run.
//
// CSVWriter serializes a calculated dataset to output.csv, header first,
// columns in the first record's key order. ReportWriter aggregates the same
// dataset into report.txt:
//
//	{
//	    "Processing Time": "2025-01-15 09:30:00",
//	    "Total Records Processed": 2,
//	    "Total Revenue": 61.0
//	}
//
// Floats are written as the shortest text that parses back to the same value,
// with integral values keeping a ".0" suffix.
package exporter
