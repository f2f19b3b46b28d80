package errors

import (
	"fmt"
)

// UsageMessage is printed when the argument count is wrong.
const UsageMessage = "Usage: salesreport <input_file>"

// ConsoleMessage renders the human-readable line printed for a failed run.
func ConsoleMessage(err error) string {
	pe, ok := AsPipelineError(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	switch pe.Kind {
	case KindInvocation:
		return UsageMessage
	case KindInputAccess:
		if pe.NotFound() {
			return fmt.Sprintf("Error: File %s not found.", pe.Path)
		}
		return fmt.Sprintf("Error reading file: %v", causeText(pe))
	case KindSchema:
		return fmt.Sprintf("Error: Missing column '%s'. Please ensure the input file has 'Units Sold' and 'Price' columns.", pe.Column)
	case KindValue:
		return fmt.Sprintf("Error during calculation: %v", causeText(pe))
	case KindOutputAccess:
		if pe.Stage == StageReport {
			return fmt.Sprintf("Error writing report: %v", causeText(pe))
		}
		return fmt.Sprintf("Error writing file: %v", causeText(pe))
	default:
		return fmt.Sprintf("Error: %v", pe)
	}
}

func causeText(pe *PipelineError) string {
	if pe.Cause == nil {
		return pe.Error()
	}
	return pe.Cause.Error()
}
