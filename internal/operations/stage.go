package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salescli/internal/errors"
)

// StepStatus represents the current status of a stage
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepState represents the runtime state of a stage
type StepState struct {
	ID        string
	Status    StepStatus
	StartTime time.Time
	EndTime   time.Time
	Error     error
}

// NewStepState creates a pending stage state
func NewStepState(id string) *StepState {
	return &StepState{ID: id, Status: StepStatusPending}
}

// Start marks the stage as active
func (s *StepState) Start(now time.Time) {
	s.StartTime = now
	s.Status = StepStatusActive
}

// Complete marks the stage as completed
func (s *StepState) Complete(now time.Time) {
	s.EndTime = now
	s.Status = StepStatusCompleted
}

// Fail marks the stage as failed with the given error
func (s *StepState) Fail(now time.Time, err error) {
	s.EndTime = now
	s.Status = StepStatusFailed
	s.Error = err
}

// Duration returns how long the stage ran
func (s *StepState) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// runStage wraps one stage in a span, logs its outcome and records its duration
func (p *Pipeline) runStage(ctx context.Context, id string, fn func(context.Context) error) error {
	state := NewStepState(id)
	p.stages = append(p.stages, state)

	ctx, span := p.env.Tracer.Start(ctx, "stage."+id, trace.WithAttributes(attribute.String("stage", id)))
	defer span.End()

	state.Start(p.env.Clock())
	p.env.Logger.DebugContext(ctx, "Stage started", slog.String("stage", id))

	err := fn(ctx)
	if err != nil {
		state.Fail(p.env.Clock(), err)
		recordSpanError(span, err)

		attrs := []any{slog.String("stage", id), slog.String("error", err.Error())}
		if pe, ok := errors.AsPipelineError(err); ok {
			attrs = append(attrs, slog.String("kind", pe.Kind.String()))
		}
		p.env.Logger.ErrorContext(ctx, "Stage failed", attrs...)
	} else {
		state.Complete(p.env.Clock())
		span.SetStatus(codes.Ok, "")
		p.env.Logger.InfoContext(ctx, "Stage completed",
			slog.String("stage", id),
			slog.Duration("duration", state.Duration()))
	}

	p.env.Metrics.RecordStage(ctx, id, state.Duration(), err)
	return err
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
