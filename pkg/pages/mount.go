package pages

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/actions"
	"github.com/goliatone/go-eventforms/pkg/clock"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

type settings struct {
	clock        clock.Clock
	logger       zerolog.Logger
	paymentDelay time.Duration
	failure      string
	gateway      actions.PaymentGateway
	recorder     actions.EventRecorder
	pipeline     []pipeline.Option
}

// Option configures how a page is mounted.
type Option func(*settings)

// WithClock drives both validation time and the simulated payment delay.
func WithClock(c clock.Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger attaches a structured logger to the orchestrator and actions.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithPaymentDelay overrides the simulated gateway latency.
func WithPaymentDelay(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.paymentDelay = d
		}
	}
}

// WithBookingFailureMessage overrides the message shown when a booking fails.
func WithBookingFailureMessage(msg string) Option {
	return func(s *settings) {
		if msg != "" {
			s.failure = msg
		}
	}
}

// WithGateway replaces the simulated payment gateway.
func WithGateway(g actions.PaymentGateway) Option {
	return func(s *settings) {
		s.gateway = g
	}
}

// WithRecorder replaces the log-only event recorder.
func WithRecorder(r actions.EventRecorder) Option {
	return func(s *settings) {
		s.recorder = r
	}
}

// WithPipelineOptions forwards options to the orchestrator (notifier,
// navigator, metrics, prefill).
func WithPipelineOptions(opts ...pipeline.Option) Option {
	return func(s *settings) {
		s.pipeline = append(s.pipeline, opts...)
	}
}

func newSettings(options []Option) settings {
	s := settings{
		clock:        clock.Real{},
		logger:       zerolog.Nop(),
		paymentDelay: actions.DefaultPaymentDelay,
		failure:      actions.BookingFailureMessage,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func (s settings) orchestratorOptions(extra ...pipeline.Option) []pipeline.Option {
	base := []pipeline.Option{
		pipeline.WithClock(s.clock),
		pipeline.WithLogger(s.logger),
	}
	base = append(base, extra...)
	return append(base, s.pipeline...)
}

// MountBooking mounts the booking form bound to the booking action.
func MountBooking(options ...Option) (*pipeline.Orchestrator, error) {
	s := newSettings(options)
	gateway := s.gateway
	if gateway == nil {
		gateway = actions.NewSimulatedGateway(
			actions.WithGatewayClock(s.clock),
			actions.WithDelay(s.paymentDelay),
		)
	}
	action := actions.NewBooking(
		actions.WithGateway(gateway),
		actions.WithBookingLogger(s.logger),
	)
	return pipeline.New(*Booking().Schema, action,
		s.orchestratorOptions(pipeline.WithFailureMessage(s.failure))...)
}

// MountCreation mounts the creation form bound to the creation action.
func MountCreation(options ...Option) (*pipeline.Orchestrator, error) {
	s := newSettings(options)
	recorder := s.recorder
	if recorder == nil {
		recorder = actions.LogRecorder{Logger: s.logger}
	}
	action := actions.NewCreation(
		actions.WithRecorder(recorder),
		actions.WithCreationClock(s.clock),
	)
	return pipeline.New(*Creation().Schema, action, s.orchestratorOptions()...)
}

// Mount mounts the form behind a data-entry page.
func Mount(p Page, options ...Option) (*pipeline.Orchestrator, error) {
	if p.Schema == nil {
		return nil, ErrStaticPage
	}
	switch p.Schema.ID {
	case BookingFormID:
		return MountBooking(options...)
	case CreationFormID:
		return MountCreation(options...)
	default:
		return nil, ErrUnknownForm
	}
}
