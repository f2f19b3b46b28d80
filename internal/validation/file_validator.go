package validation

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"salescli/internal/errors"
)

// Format identifies how an input file is decoded
type Format int

const (
	// FormatDelimited is comma-separated text with a header row
	FormatDelimited Format = iota
	// FormatWorkbook is an .xlsx workbook read from its first sheet
	FormatWorkbook
)

func (f Format) String() string {
	if f == FormatWorkbook {
		return "xlsx"
	}
	return "csv"
}

// FileValidator checks input files before they are decoded
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path names a readable regular file and
// reports the format it should be decoded as. A missing file yields a
// not-found error, anything else a read error.
func (v *FileValidator) ValidateInputFile(path string) (Format, error) {
	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return FormatDelimited, errors.NewFileNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return FormatDelimited, errors.NewReadError(path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return FormatDelimited, errors.NewReadError(path, fmt.Errorf("%s is a directory, not a file", path))
	}

	// opening catches permission problems before decoding starts
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return FormatDelimited, errors.NewReadError(path, err)
	}
	file.Close()

	format := DetectFormat(path)
	if format == FormatWorkbook && strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return format, errors.NewReadError(path, fmt.Errorf("%s is a temporary Excel file", path))
	}

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.String("format", format.String()),
		slog.Int64("size", info.Size()))
	return format, nil
}

// DetectFormat picks the decoder from the file extension
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatWorkbook
	}
	return FormatDelimited
}
