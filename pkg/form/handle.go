package form

import (
	"time"

	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/validation"
)

// Handle binds one schema field to the form state. Input surfaces push raw
// edits through Set; renderers read Get and Error.
type Handle struct {
	field model.Field
	state *State
	now   func() time.Time
}

// Field returns the schema entry behind the handle.
func (h *Handle) Field() model.Field {
	return h.field
}

// Name returns the field name.
func (h *Handle) Name() string {
	return h.field.Name
}

// Get returns the current (coerced) value.
func (h *Handle) Get() any {
	v, _ := h.state.Value(h.field.Name)
	return v
}

// Set stores a raw edit after coercing it to the field type. Once a submit
// has been attempted the field is re-validated so its inline error tracks the
// edit.
func (h *Handle) Set(raw any) {
	h.state.setValue(h.field.Name, validation.Coerce(h.field, raw))
	if h.state.Submitted() {
		h.Validate()
	}
}

// Validate checks the current value, updates the inline error and returns
// the message and whether the value passed.
func (h *Handle) Validate() (string, bool) {
	msg, ok := validation.ValidateField(h.field, h.Get(), h.now())
	h.state.setError(h.field.Name, msg)
	return msg, ok
}

// Error returns the inline error currently shown for the field.
func (h *Handle) Error() (string, bool) {
	return h.state.Error(h.field.Name)
}
