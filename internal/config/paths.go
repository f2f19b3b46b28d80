package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixed artifact names
const (
	OutputCSVName  = "output.csv"
	ReportFileName = "report.txt"
)

// Paths contains the artifact paths of one run
type Paths struct {
	OutputDir  string
	OutputCSV  string
	ReportFile string
}

// NewPaths resolves the fixed artifacts against an output directory
func NewPaths(outputDir string) *Paths {
	return &Paths{
		OutputDir:  outputDir,
		OutputCSV:  filepath.Join(outputDir, OutputCSVName),
		ReportFile: filepath.Join(outputDir, ReportFileName),
	}
}

// GetPaths returns paths rooted at the current working directory
func GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewPaths(wd), nil
}

// DisplayName returns the path as shown on the console: relative to the
// output directory when it lives inside it.
func (p *Paths) DisplayName(path string) string {
	rel, err := filepath.Rel(p.OutputDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
