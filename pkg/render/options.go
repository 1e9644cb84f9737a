package render

import (
	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

// RenderOptions carry the live form state into a render. Static pages ignore
// them.
type RenderOptions struct {
	// Values are the current field values keyed by field name.
	Values map[string]any
	// Errors are the inline messages keyed by field name.
	Errors map[string]string
	// Submitting disables the submit control while an action is in flight.
	Submitting bool
	// Hidden inputs emitted alongside the visible fields.
	Hidden []HiddenField
	// Notice is a toast carried over from the previous submission.
	Notice *pipeline.Notification
}

// OptionsFrom snapshots a mounted form. A nil orchestrator yields empty
// options.
func OptionsFrom(o *pipeline.Orchestrator) RenderOptions {
	if o == nil {
		return RenderOptions{}
	}
	return RenderOptions{
		Values:     o.Values(),
		Errors:     o.Errors(),
		Submitting: o.Submitting(),
	}
}
