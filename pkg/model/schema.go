package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaMisconfigured marks programming-time schema defects.
var ErrSchemaMisconfigured = errors.New("model: schema misconfigured")

// Check validates the declaration itself: every field has a unique non-empty
// name and a known type, and every constraint fits its field type.
func (s FormSchema) Check() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: form id is required", ErrSchemaMisconfigured)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: form %q declares no fields", ErrSchemaMisconfigured, s.ID)
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for idx, field := range s.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: form %q field #%d has no name", ErrSchemaMisconfigured, s.ID, idx)
		}
		if name != field.Name {
			return fmt.Errorf("%w: form %q field %q has surrounding whitespace", ErrSchemaMisconfigured, s.ID, field.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: form %q declares field %q twice", ErrSchemaMisconfigured, s.ID, name)
		}
		seen[name] = struct{}{}

		if !field.Type.valid() {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrSchemaMisconfigured, name, field.Type)
		}
		for _, c := range field.Constraints {
			if !c.appliesTo(field.Type) {
				return fmt.Errorf("%w: constraint %q does not apply to %s field %q", ErrSchemaMisconfigured, c.Kind, field.Type, name)
			}
			if (c.Kind == ConstraintMinLength || c.Kind == ConstraintMaxLength) && c.Length < 0 {
				return fmt.Errorf("%w: field %q has negative %s", ErrSchemaMisconfigured, name, c.Kind)
			}
		}
		if minC, ok := field.Constraint(ConstraintMinLength); ok {
			if maxC, ok := field.Constraint(ConstraintMaxLength); ok && minC.Length > maxC.Length {
				return fmt.Errorf("%w: field %q min length %d exceeds max length %d", ErrSchemaMisconfigured, name, minC.Length, maxC.Length)
			}
		}
	}
	return nil
}

// MustCheck panics when the declaration is misconfigured and returns the
// schema otherwise, so static declarations can be checked inline.
func (s FormSchema) MustCheck() FormSchema {
	if err := s.Check(); err != nil {
		panic(err)
	}
	return s
}

// Bind verifies that every name an input surface references has exactly one
// schema entry.
func (s FormSchema) Bind(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := s.Field(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: form %q has no schema entry for %s", ErrSchemaMisconfigured, s.ID, strings.Join(missing, ", "))
	}
	return nil
}
