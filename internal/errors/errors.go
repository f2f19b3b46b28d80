package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindInvocation   Kind = iota // wrong argument count
	KindInputAccess              // input file missing or unreadable
	KindSchema                   // required column absent
	KindValue                    // required field not numeric
	KindOutputAccess             // output table or report not writable
)

func (k Kind) String() string {
	switch k {
	case KindInvocation:
		return "invocation"
	case KindInputAccess:
		return "input_access"
	case KindSchema:
		return "schema"
	case KindValue:
		return "value"
	case KindOutputAccess:
		return "output_access"
	default:
		return "unknown"
	}
}

// Pipeline stages
const (
	StageRead      = "read"
	StageCalculate = "calculate"
	StageWrite     = "write"
	StageReport    = "report"
)

// Sentinel causes
var (
	ErrFileNotFound    = stderrors.New("file not found")
	ErrMissingHeader   = stderrors.New("missing header row")
	ErrDuplicateColumn = stderrors.New("duplicate column")
	ErrFieldCount      = stderrors.New("wrong number of fields")
	ErrNonFinite       = stderrors.New("value is not finite")
)

// PipelineError is the error returned by every pipeline stage.
type PipelineError struct {
	Kind   Kind
	Stage  string
	Path   string
	Column string
	Row    int // 1-based data row, 0 when not row specific
	Cause  error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Stage)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NotFound reports whether the input file was missing.
func (e *PipelineError) NotFound() bool {
	return e.Kind == KindInputAccess && stderrors.Is(e.Cause, ErrFileNotFound)
}

// NewInvocationError creates an invocation error for a bad argument count
func NewInvocationError(got int) *PipelineError {
	return &PipelineError{
		Kind:  KindInvocation,
		Cause: fmt.Errorf("expected 1 argument, got %d", got),
	}
}

// NewFileNotFoundError creates an input-access error for a missing file
func NewFileNotFoundError(path string, cause error) *PipelineError {
	return &PipelineError{
		Kind:  KindInputAccess,
		Stage: StageRead,
		Path:  path,
		Cause: fmt.Errorf("%w: %w", ErrFileNotFound, cause),
	}
}

// NewReadError creates an input-access error for any other read failure
func NewReadError(path string, cause error) *PipelineError {
	return &PipelineError{
		Kind:  KindInputAccess,
		Stage: StageRead,
		Path:  path,
		Cause: cause,
	}
}

// NewMissingColumnError creates a schema error naming the absent column
func NewMissingColumnError(column string, row int) *PipelineError {
	return &PipelineError{
		Kind:   KindSchema,
		Stage:  StageCalculate,
		Column: column,
		Row:    row,
	}
}

// NewValueError creates a value error for a field that failed to parse
func NewValueError(column string, row int, cause error) *PipelineError {
	return &PipelineError{
		Kind:   KindValue,
		Stage:  StageCalculate,
		Column: column,
		Row:    row,
		Cause:  cause,
	}
}

// NewWriteError creates an output-access error for the given stage
func NewWriteError(stage, path string, cause error) *PipelineError {
	return &PipelineError{
		Kind:  KindOutputAccess,
		Stage: stage,
		Path:  path,
		Cause: cause,
	}
}

// AsPipelineError extracts a PipelineError from an error chain
func AsPipelineError(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsKind checks whether err is a PipelineError of the given kind
func IsKind(err error, kind Kind) bool {
	pe, ok := AsPipelineError(err)
	return ok && pe.Kind == kind
}

// ExitCode maps a run result to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
