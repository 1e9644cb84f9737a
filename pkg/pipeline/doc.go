// Package pipeline runs the submit cycle shared by the data-entry pages:
// validate every field against the form schema, invoke the bound Action at
// most once, and report the terminal outcome through the injected
// NotificationSink and Navigator.
//
// An Orchestrator owns one FormState. Input surfaces edit it through the
// field handles the orchestrator keeps for every schema entry. Submit moves
// the form through Idle → Validating → (Invalid → Idle) or Submitting →
// (Succeeded | Failed) → Idle. A Submit issued while another is in flight
// returns ErrSubmitInFlight without side effects. Close tears the instance
// down; an action that resolves afterwards is discarded.
package pipeline
