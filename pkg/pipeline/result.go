package pipeline

import (
	"errors"

	"github.com/goliatone/go-eventforms/pkg/validation"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while an action
	// is still running. The call has no effect.
	ErrSubmitInFlight = errors.New("pipeline: submission already in flight")
	// ErrClosed is returned once the page instance has been torn down,
	// including for an action that resolves after Close.
	ErrClosed = errors.New("pipeline: form closed")
	// ErrActionPanic wraps a panic raised by an action. The submission is
	// reported as ActionFailed.
	ErrActionPanic = errors.New("pipeline: action panicked")
	// ErrActionRequired is returned by New when no action is bound.
	ErrActionRequired = errors.New("pipeline: action is required")
)

// Status tags the outcome of one submit attempt.
type Status int

const (
	StatusSuccess Status = iota + 1
	StatusValidationFailed
	StatusActionFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusValidationFailed:
		return "validation_failed"
	case StatusActionFailed:
		return "action_failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a submission with a notification.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusActionFailed
}

// Result is produced once per submit attempt.
type Result struct {
	ID       string
	Status   Status
	Title    string
	Message  string
	Redirect string
	// Errors holds the inline errors for StatusValidationFailed.
	Errors validation.Errors
	// Err holds the action fault for StatusActionFailed.
	Err error
}

// Phase is the orchestrator's position in the submit cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}
