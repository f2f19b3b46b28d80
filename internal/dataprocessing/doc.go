// Package dataprocessing loads sales files and derives revenue.
//
// Reader turns a comma-separated file (or the first sheet of an .xlsx
// workbook) into a domain.Dataset, keeping row order and column order.
// Calculator then sets Revenue = Units Sold × Price on every record:
//
//	ds, err := dataprocessing.NewReader(logger).Read(ctx, "sales.csv")
//	if err != nil {
//	    return err
//	}
//	if err := dataprocessing.NewCalculator(logger).Calculate(ctx, ds); err != nil {
//	    return err
//	}
//
// Both return *errors.PipelineError values so callers can tell a missing file
// from a malformed one, and a missing column from a non-numeric value.
package dataprocessing
