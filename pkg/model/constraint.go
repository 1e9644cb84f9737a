package model

import "fmt"

// ConstraintKind tags the constraint variant.
type ConstraintKind string

const (
	ConstraintRequired   ConstraintKind = "required"
	ConstraintMinLength  ConstraintKind = "minLength"
	ConstraintMaxLength  ConstraintKind = "maxLength"
	ConstraintNumericMin ConstraintKind = "min"
	ConstraintFutureDate ConstraintKind = "futureDate"
)

// Constraint is a single rule a field value must satisfy. Length bounds use
// Length, numeric bounds use Min; Required and FutureDate carry no parameter.
// Message is the inline error shown when the rule fails.
type Constraint struct {
	Kind    ConstraintKind `json:"kind"`
	Length  int            `json:"length,omitempty"`
	Min     float64        `json:"min,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Required builds a non-empty constraint.
func Required(message string) Constraint {
	return Constraint{Kind: ConstraintRequired, Message: message}
}

// MinLength builds a lower length bound (inclusive).
func MinLength(n int, message string) Constraint {
	return Constraint{Kind: ConstraintMinLength, Length: n, Message: message}
}

// MaxLength builds an upper length bound (inclusive).
func MaxLength(n int, message string) Constraint {
	return Constraint{Kind: ConstraintMaxLength, Length: n, Message: message}
}

// Min builds a numeric lower bound (inclusive).
func Min(v float64, message string) Constraint {
	return Constraint{Kind: ConstraintNumericMin, Min: v, Message: message}
}

// FutureDate requires a date at or after the validation instant.
func FutureDate(message string) Constraint {
	return Constraint{Kind: ConstraintFutureDate, Message: message}
}

// ExactLength is shorthand for a MinLength/MaxLength pair sharing a message.
func ExactLength(n int, message string) []Constraint {
	return []Constraint{MinLength(n, message), MaxLength(n, message)}
}

// Describe renders a default message for constraints declared without one.
func (c Constraint) Describe() string {
	if c.Message != "" {
		return c.Message
	}
	switch c.Kind {
	case ConstraintRequired:
		return "required"
	case ConstraintMinLength:
		return fmt.Sprintf("min length %d", c.Length)
	case ConstraintMaxLength:
		return fmt.Sprintf("max length %d", c.Length)
	case ConstraintNumericMin:
		return fmt.Sprintf("min %v", c.Min)
	case ConstraintFutureDate:
		return "must be in the future"
	default:
		return string(c.Kind)
	}
}

// appliesTo reports whether the constraint makes sense for the field type.
func (c Constraint) appliesTo(t FieldType) bool {
	switch c.Kind {
	case ConstraintRequired:
		return true
	case ConstraintMinLength, ConstraintMaxLength:
		return t == FieldTypeString
	case ConstraintNumericMin:
		return t.Numeric()
	case ConstraintFutureDate:
		return t == FieldTypeDate
	default:
		return false
	}
}
