package validation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-eventforms/pkg/model"
)

// Messages reported when a value has the wrong shape for its field type.
const (
	MessageRequired       = "Required"
	MessageExpectedString = "Expected text"
	MessageExpectedNumber = "Expected a number"
	MessageExpectedInt    = "Expected a whole number"
	MessageExpectedDate   = "Invalid date"
)

// Validate checks every schema field against the candidate values and returns
// one error per failing field in declaration order. now is the instant future
// date constraints compare against. Validate never performs I/O and never
// panics; values of the wrong shape are reported as field errors.
func Validate(schema model.FormSchema, values map[string]any, now time.Time) Errors {
	var errs Errors
	for _, field := range schema.Fields {
		if msg, ok := ValidateField(field, values[field.Name], now); !ok {
			errs = append(errs, FieldError{Field: field.Name, Message: msg})
		}
	}
	return errs
}

// ValidateField checks a single value, coercing it first. It returns the
// message of the first failing rule and false, or "" and true.
func ValidateField(field model.Field, raw any, now time.Time) (string, bool) {
	value := Coerce(field, raw)

	if field.Type == model.FieldTypeString {
		return validateString(field, value)
	}

	if value == nil {
		if c, ok := field.Constraint(model.ConstraintRequired); ok {
			return messageOr(c, MessageRequired), false
		}
		return "", true
	}

	switch field.Type {
	case model.FieldTypeInteger:
		n, ok := value.(int64)
		if !ok {
			return MessageExpectedInt, false
		}
		return checkNumeric(field, float64(n))
	case model.FieldTypeNumber:
		f, ok := value.(float64)
		if !ok {
			return MessageExpectedNumber, false
		}
		return checkNumeric(field, f)
	case model.FieldTypeDate:
		t, ok := value.(time.Time)
		if !ok {
			return MessageExpectedDate, false
		}
		return checkDate(field, t, now)
	default:
		return fmt.Sprintf("Unsupported field type %q", field.Type), false
	}
}

func validateString(field model.Field, value any) (string, bool) {
	var s string
	switch v := value.(type) {
	case nil:
	case string:
		s = v
	default:
		return MessageExpectedString, false
	}

	length := utf8.RuneCountInString(s)
	for _, c := range field.Constraints {
		switch c.Kind {
		case model.ConstraintRequired:
			if length < 1 {
				return messageOr(c, MessageRequired), false
			}
		case model.ConstraintMinLength:
			if length < c.Length {
				return c.Describe(), false
			}
		case model.ConstraintMaxLength:
			if length > c.Length {
				return c.Describe(), false
			}
		}
	}
	return "", true
}

func checkNumeric(field model.Field, v float64) (string, bool) {
	for _, c := range field.Constraints {
		if c.Kind == model.ConstraintNumericMin && v < c.Min {
			return c.Describe(), false
		}
	}
	return "", true
}

func checkDate(field model.Field, t, now time.Time) (string, bool) {
	for _, c := range field.Constraints {
		if c.Kind == model.ConstraintFutureDate && t.Before(now) {
			return c.Describe(), false
		}
	}
	return "", true
}

func messageOr(c model.Constraint, fallback string) string {
	if c.Message != "" {
		return c.Message
	}
	return fallback
}
