// Package shared holds helpers used across salescli packages.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and fixture helpers that write sample sales files into a test's
// temporary directory:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    input := testutil.WriteFile(t, t.TempDir(), "sales.csv", testutil.SampleSalesCSV)
//	    ...
//	    testutil.AssertNoErrors(t, handler)
//	}
package shared
