// Package form holds the per-page FormState and the input handles that bind
// schema fields to it.
package form

import (
	"fmt"
	"time"

	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/validation"
)

// State tracks the current field values, inline errors and the submitting
// flag of one mounted form. It is owned by a single page instance and is not
// safe for concurrent use on its own; the pipeline serialises access.
type State struct {
	schema     model.FormSchema
	values     map[string]any
	errors     map[string]string
	submitting bool
	submitted  bool
}

// NewState seeds the state with the schema defaults overlaid by prefill.
// Prefilled values are coerced to their canonical field types.
func NewState(schema model.FormSchema, prefill map[string]any) (*State, error) {
	if err := schema.Check(); err != nil {
		return nil, err
	}
	values := schema.Defaults()
	for name, value := range prefill {
		field, ok := schema.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: prefill for unknown field %q", model.ErrSchemaMisconfigured, name)
		}
		values[name] = validation.Coerce(field, value)
	}
	return &State{
		schema: schema,
		values: values,
		errors: make(map[string]string),
	}, nil
}

// Schema returns the declaration the state was built from.
func (s *State) Schema() model.FormSchema {
	return s.schema
}

// Value returns the current value of a field.
func (s *State) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Values returns a copy of the current values.
func (s *State) Values() map[string]any {
	return cloneValues(s.values)
}

// Error returns the inline error attached to a field.
func (s *State) Error(name string) (string, bool) {
	msg, ok := s.errors[name]
	return msg, ok
}

// Errors returns a copy of the inline errors.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submitting reports whether an action is in flight.
func (s *State) Submitting() bool {
	return s.submitting
}

// Submitted reports whether a submit has been attempted since mount.
func (s *State) Submitted() bool {
	return s.submitted
}

// SetSubmitting toggles the in-flight flag.
func (s *State) SetSubmitting(v bool) {
	s.submitting = v
}

// MarkSubmitted records that a submit was attempted; later edits re-validate.
func (s *State) MarkSubmitted() {
	s.submitted = true
}

// ReplaceErrors swaps the inline errors for the provided validation result.
func (s *State) ReplaceErrors(errs validation.Errors) {
	s.errors = make(map[string]string, len(errs))
	for _, fe := range errs {
		s.errors[fe.Field] = fe.Message
	}
}

func (s *State) setValue(name string, value any) {
	s.values[name] = value
}

func (s *State) setError(name, msg string) {
	if msg == "" {
		delete(s.errors, name)
		return
	}
	s.errors[name] = msg
}

// Handle returns the input handle for a schema field.
func (s *State) Handle(name string, now func() time.Time) (*Handle, error) {
	field, ok := s.schema.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: form %q has no field %q", model.ErrSchemaMisconfigured, s.schema.ID, name)
	}
	if now == nil {
		now = time.Now
	}
	return &Handle{field: field, state: s, now: now}, nil
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneValues(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
