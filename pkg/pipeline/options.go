package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/clock"
)

// DefaultFailureMessage is shown when an action faults and no page-specific
// message is configured.
const DefaultFailureMessage = "Something went wrong. Please try again."

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNotifier sets the notification channel.
func WithNotifier(sink NotificationSink) Option {
	return func(o *Orchestrator) {
		if sink != nil {
			o.notifier = sink
		}
	}
}

// WithNavigator sets the navigation channel.
func WithNavigator(nav Navigator) Option {
	return func(o *Orchestrator) {
		if nav != nil {
			o.navigator = nav
		}
	}
}

// WithClock overrides the clock used for future-date checks.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMetrics records submission outcomes and action latency.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithFailureMessage sets the generic retry message for action faults.
func WithFailureMessage(msg string) Option {
	return func(o *Orchestrator) {
		if msg != "" {
			o.failureMessage = msg
		}
	}
}

// WithPrefill seeds field values on mount.
func WithPrefill(values map[string]any) Option {
	return func(o *Orchestrator) {
		o.prefill = values
	}
}

// WithIDGenerator overrides how submission IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newID = fn
		}
	}
}
