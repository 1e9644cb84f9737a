package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/clock"
	"github.com/goliatone/go-eventforms/pkg/form"
	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/validation"
)

// Orchestrator runs the submit cycle for one mounted form.
type Orchestrator struct {
	mu sync.Mutex

	schema  model.FormSchema
	state   *form.State
	handles map[string]*Handle
	action  Action

	notifier       NotificationSink
	navigator      Navigator
	clock          clock.Clock
	logger         zerolog.Logger
	metrics        *Metrics
	failureMessage string
	prefill        map[string]any
	newID          func() string

	phase     Phase
	closed    bool
	lifecycle context.Context
	teardown  context.CancelFunc
}

// New mounts a form: it checks the schema, seeds the state with defaults and
// builds one handle per field. A misconfigured schema is reported here, never
// at submit time.
func New(schema model.FormSchema, action Action, options ...Option) (*Orchestrator, error) {
	if action == nil {
		return nil, ErrActionRequired
	}

	o := &Orchestrator{
		schema:         schema,
		action:         action,
		notifier:       discardSink{},
		navigator:      stayNavigator{},
		clock:          clock.Real{},
		logger:         zerolog.Nop(),
		failureMessage: DefaultFailureMessage,
		newID:          uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	state, err := form.NewState(schema, o.prefill)
	if err != nil {
		return nil, fmt.Errorf("pipeline: mount %q: %w", schema.ID, err)
	}
	o.state = state

	o.handles = make(map[string]*Handle, len(schema.Fields))
	for _, field := range schema.Fields {
		h, err := state.Handle(field.Name, o.clock.Now)
		if err != nil {
			return nil, fmt.Errorf("pipeline: bind %q: %w", field.Name, err)
		}
		o.handles[field.Name] = &Handle{o: o, h: h}
	}

	o.lifecycle, o.teardown = context.WithCancel(context.Background())
	return o, nil
}

// Schema returns the form declaration.
func (o *Orchestrator) Schema() model.FormSchema {
	return o.schema
}

// Phase reports where the form is in the submit cycle.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Submitting reports whether an action is in flight.
func (o *Orchestrator) Submitting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Submitting()
}

// Values returns a snapshot of the current field values.
func (o *Orchestrator) Values() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Values()
}

// Errors returns a snapshot of the inline field errors.
func (o *Orchestrator) Errors() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Errors()
}

// Handle returns the input handle bound to a schema field. Referencing a
// field the schema does not declare is a configuration defect.
func (o *Orchestrator) Handle(name string) (*Handle, error) {
	h, ok := o.handles[name]
	if !ok {
		return nil, fmt.Errorf("%w: form %q has no field %q", model.ErrSchemaMisconfigured, o.schema.ID, name)
	}
	return h, nil
}

// SetField applies an edit event (field name, raw value).
func (o *Orchestrator) SetField(name string, raw any) error {
	h, err := o.Handle(name)
	if err != nil {
		return err
	}
	return h.Set(raw)
}

// Submit validates the current values and, when they pass, invokes the bound
// action once. Validation failures are reported inline only. Terminal
// outcomes notify exactly once; success then navigates to the redirect.
func (o *Orchestrator) Submit(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return Result{}, ErrClosed
	}
	if o.state.Submitting() {
		o.mu.Unlock()
		o.logger.Debug().Str("form", o.schema.ID).Msg("submit ignored: action in flight")
		return Result{}, ErrSubmitInFlight
	}

	id := o.newID()
	log := o.logger.With().Str("form", o.schema.ID).Str("submission", id).Logger()

	o.phase = PhaseValidating
	o.state.MarkSubmitted()
	values := o.state.Values()
	errs := validation.Validate(o.schema, values, o.clock.Now())
	o.state.ReplaceErrors(errs)

	if !errs.Empty() {
		o.phase = PhaseIdle
		o.mu.Unlock()
		log.Debug().Strs("fields", errs.Fields()).Msg("validation failed")
		o.metrics.observeOutcome(o.schema.ID, StatusValidationFailed)
		return Result{ID: id, Status: StatusValidationFailed, Errors: errs}, nil
	}

	o.phase = PhaseSubmitting
	o.state.SetSubmitting(true)
	o.mu.Unlock()

	outcome, actionErr := o.perform(ctx, values)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		log.Debug().Msg("form closed before action resolved; result discarded")
		return Result{}, ErrClosed
	}
	o.state.SetSubmitting(false)
	o.phase = PhaseIdle
	o.mu.Unlock()

	if actionErr != nil {
		log.Warn().Err(actionErr).Msg("action failed")
		o.metrics.observeOutcome(o.schema.ID, StatusActionFailed)
		o.notifier.Notify(ctx, Notification{Kind: NotificationError, Title: o.failureMessage})
		return Result{
			ID:      id,
			Status:  StatusActionFailed,
			Message: o.failureMessage,
			Err:     actionErr,
		}, nil
	}

	log.Info().Str("redirect", outcome.Redirect).Msg("submission succeeded")
	o.metrics.observeOutcome(o.schema.ID, StatusSuccess)
	o.notifier.Notify(ctx, Notification{
		Kind:        NotificationSuccess,
		Title:       outcome.Title,
		Description: outcome.Message,
	})
	if outcome.Redirect != "" {
		if err := o.navigator.NavigateTo(ctx, outcome.Redirect); err != nil {
			log.Warn().Err(err).Str("redirect", outcome.Redirect).Msg("navigation failed")
		}
	}

	return Result{
		ID:       id,
		Status:   StatusSuccess,
		Title:    outcome.Title,
		Message:  outcome.Message,
		Redirect: outcome.Redirect,
	}, nil
}

func (o *Orchestrator) perform(ctx context.Context, values map[string]any) (outcome Outcome, err error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(o.lifecycle, cancel)
	defer stop()

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome, err = Outcome{}, fmt.Errorf("%w: %v", ErrActionPanic, r)
		}
		o.metrics.observeAction(o.schema.ID, time.Since(started))
	}()
	return o.action.Perform(runCtx, values)
}

// Close tears the form down. Any action still in flight is cancelled and its
// resolution discarded. Close is idempotent.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	o.phase = PhaseIdle
	o.teardown()
	return nil
}

// Handle is the orchestrator-guarded binding of one schema field.
type Handle struct {
	o *Orchestrator
	h *form.Handle
}

// Field returns the schema entry.
func (h *Handle) Field() model.Field {
	return h.h.Field()
}

// Get returns the current value.
func (h *Handle) Get() any {
	h.o.mu.Lock()
	defer h.o.mu.Unlock()
	return h.h.Get()
}

// Set applies a raw edit. Edits after Close are rejected.
func (h *Handle) Set(raw any) error {
	h.o.mu.Lock()
	defer h.o.mu.Unlock()
	if h.o.closed {
		return ErrClosed
	}
	h.h.Set(raw)
	return nil
}

// Validate checks the field on its own and updates its inline error.
func (h *Handle) Validate() (string, bool) {
	h.o.mu.Lock()
	defer h.o.mu.Unlock()
	return h.h.Validate()
}

// Error returns the inline error currently attached to the field.
func (h *Handle) Error() (string, bool) {
	h.o.mu.Lock()
	defer h.o.mu.Unlock()
	return h.h.Error()
}
