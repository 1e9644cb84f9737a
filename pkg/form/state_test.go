package form_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-eventforms/pkg/form"
	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/validation"
)

func ticketSchema() model.FormSchema {
	return model.FormSchema{
		ID: "tickets",
		Fields: []model.Field{
			{Name: "ticketType", Type: model.FieldTypeString, Default: "", Constraints: []model.Constraint{model.Required("Ticket type is required")}},
			{Name: "quantity", Type: model.FieldTypeInteger, Default: int64(1), Constraints: []model.Constraint{model.Min(1, "Quantity must be at least 1")}},
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
}

func TestNewState_SeedsDefaultsAndPrefill(t *testing.T) {
	state, err := form.NewState(ticketSchema(), map[string]any{"quantity": "3"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}

	want := map[string]any{"ticketType": "", "quantity": int64(3)}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if state.Submitting() || state.Submitted() {
		t.Fatalf("fresh state must be idle")
	}
}

func TestNewState_RejectsUnknownPrefill(t *testing.T) {
	_, err := form.NewState(ticketSchema(), map[string]any{"seat": "A1"})
	if !errors.Is(err, model.ErrSchemaMisconfigured) {
		t.Fatalf("expected misconfiguration, got %v", err)
	}
}

func TestValues_ReturnsCopy(t *testing.T) {
	state, err := form.NewState(ticketSchema(), nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	snapshot := state.Values()
	snapshot["ticketType"] = "VIP"

	if v, _ := state.Value("ticketType"); v != "" {
		t.Fatalf("snapshot mutation leaked into state: %v", v)
	}
}

func TestHandle_SetCoercesNumericInput(t *testing.T) {
	state, _ := form.NewState(ticketSchema(), nil)
	h, err := state.Handle("quantity", fixedNow)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	h.Set("2")
	if got := h.Get(); got != int64(2) {
		t.Fatalf("expected int64(2), got %#v", got)
	}
	if _, shown := h.Error(); shown {
		t.Fatalf("edits before the first submit must not show errors")
	}
}

func TestHandle_RevalidatesAfterSubmitAttempt(t *testing.T) {
	state, _ := form.NewState(ticketSchema(), nil)
	h, _ := state.Handle("quantity", fixedNow)

	state.MarkSubmitted()
	h.Set(0)
	if msg, shown := h.Error(); !shown || msg != "Quantity must be at least 1" {
		t.Fatalf("expected inline error after submit, got %q (%v)", msg, shown)
	}

	h.Set(1)
	if _, shown := h.Error(); shown {
		t.Fatalf("expected error to clear once the value is valid")
	}
}

func TestHandle_UnknownFieldIsMisconfiguration(t *testing.T) {
	state, _ := form.NewState(ticketSchema(), nil)
	if _, err := state.Handle("seat", fixedNow); !errors.Is(err, model.ErrSchemaMisconfigured) {
		t.Fatalf("expected misconfiguration, got %v", err)
	}
}

func TestReplaceErrors(t *testing.T) {
	state, _ := form.NewState(ticketSchema(), nil)
	state.ReplaceErrors(validation.Errors{{Field: "ticketType", Message: "Ticket type is required"}})

	want := map[string]string{"ticketType": "Ticket type is required"}
	if diff := cmp.Diff(want, state.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	state.ReplaceErrors(nil)
	if len(state.Errors()) != 0 {
		t.Fatalf("expected errors to clear")
	}
}
