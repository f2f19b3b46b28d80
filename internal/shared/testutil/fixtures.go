package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleSalesCSV is the two-row sales file used across package tests
const SampleSalesCSV = "Item,Units Sold,Price\nWidget,10,2.5\nGadget,4,9.0\n"

// SampleOutputCSV is the expected output.csv for SampleSalesCSV
const SampleOutputCSV = "Item,Units Sold,Price,Revenue\r\nWidget,10,2.5,25.0\r\nGadget,4,9.0,36.0\r\n"

// WriteFile writes content to dir/name and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// AssertNotExists fails the test if path exists
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("stat %s: %v", path, err)
	}
}
