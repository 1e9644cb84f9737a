package validation

import (
	"errors"
	"strings"
)

// ErrInvalid matches any non-empty Errors value via errors.Is.
var ErrInvalid = errors.New("validation: invalid form values")

// FieldError is a single inline error keyed to a field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists field errors in schema declaration order. A nil or empty value
// means every field passed.
type Errors []FieldError

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Map returns the errors keyed by field name.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// Fields lists the failing field names in order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}

// For returns the message attached to a field.
func (e Errors) For(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalid) match a non-empty error list.
func (e Errors) Is(target error) bool {
	return target == ErrInvalid && len(e) > 0
}
