package operations

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	slogInfo  = slog.LevelInfo
	slogError = slog.LevelError
)

func TestStepState_Lifecycle(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	state := NewStepState("read")

	assert.Equal(t, StepStatusPending, state.Status)
	assert.Zero(t, state.Duration())

	state.Start(start)
	assert.Equal(t, StepStatusActive, state.Status)
	assert.Zero(t, state.Duration())

	state.Complete(start.Add(2 * time.Second))
	assert.Equal(t, StepStatusCompleted, state.Status)
	assert.Equal(t, 2*time.Second, state.Duration())
}

func TestStepState_Fail(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	state := NewStepState("write")
	cause := fmt.Errorf("disk full")

	state.Start(start)
	state.Fail(start.Add(time.Millisecond), cause)

	assert.Equal(t, StepStatusFailed, state.Status)
	assert.Equal(t, cause, state.Error)
	assert.Equal(t, time.Millisecond, state.Duration())
}
