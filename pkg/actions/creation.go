package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/clock"
	"github.com/goliatone/go-eventforms/pkg/navigation"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

// CreationTitle is the notification title after an event is created.
const CreationTitle = "Event has been created"

// DateLayout renders event dates in confirmations ("Thu Oct 15 2026").
const DateLayout = "Mon Jan 02 2006"

// Event is a newly created event.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventRecorder receives created events. There is no store behind the
// default recorder; it only logs.
type EventRecorder interface {
	Record(ctx context.Context, event Event) error
}

// LogRecorder writes created events to a structured logger.
type LogRecorder struct {
	Logger zerolog.Logger
}

// Record logs the event.
func (r LogRecorder) Record(_ context.Context, event Event) error {
	r.Logger.Info().
		Str("event_id", event.ID).
		Str("name", event.Name).
		Time("date", event.Date).
		Str("location", event.Location).
		Msg("event created")
	return nil
}

// Creation records the submitted event and confirms it.
type Creation struct {
	recorder EventRecorder
	clock    clock.Clock
	newID    func() string
	redirect string
}

// CreationOption configures a Creation action.
type CreationOption func(*Creation)

// WithRecorder replaces the log recorder.
func WithRecorder(r EventRecorder) CreationOption {
	return func(c *Creation) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithCreationClock sets the clock used for CreatedAt.
func WithCreationClock(cl clock.Clock) CreationOption {
	return func(c *Creation) {
		if cl != nil {
			c.clock = cl
		}
	}
}

// WithEventIDs overrides how event IDs are minted.
func WithEventIDs(fn func() string) CreationOption {
	return func(c *Creation) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithCreationRedirect overrides the route shown after creation.
func WithCreationRedirect(route string) CreationOption {
	return func(c *Creation) {
		c.redirect = route
	}
}

// NewCreation builds the creation action.
func NewCreation(options ...CreationOption) *Creation {
	c := &Creation{
		recorder: LogRecorder{Logger: zerolog.Nop()},
		clock:    clock.Real{},
		newID:    uuid.NewString,
		redirect: navigation.RouteEvents,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var _ pipeline.Action = (*Creation)(nil)

// Perform records the event synchronously and reports "NAME on DATE".
func (c *Creation) Perform(ctx context.Context, values map[string]any) (pipeline.Outcome, error) {
	date, err := timeValue(values, "date")
	if err != nil {
		return pipeline.Outcome{}, err
	}
	event := Event{
		ID:          c.newID(),
		Name:        stringValue(values, "name"),
		Date:        date,
		Location:    stringValue(values, "location"),
		Description: stringValue(values, "description"),
		CreatedAt:   c.clock.Now(),
	}
	if err := c.recorder.Record(ctx, event); err != nil {
		return pipeline.Outcome{}, fmt.Errorf("actions: record event: %w", err)
	}

	return pipeline.Outcome{
		Title:    CreationTitle,
		Message:  fmt.Sprintf("%s on %s", event.Name, event.Date.Format(DateLayout)),
		Redirect: c.redirect,
	}, nil
}
