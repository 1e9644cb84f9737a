// Package model declares the static form schemas the submission pipeline
// validates against. A FormSchema is an ordered list of Field entries; each
// field carries a type and an ordered list of Constraint values (the tagged
// variant Required | MinLength | MaxLength | NumericMin | FutureDate). The
// declaration order is the iteration order for validation output, prompting
// and rendering, so test output stays deterministic.
//
// Schemas are checked once at construction. Check reports configuration
// defects (duplicate names, constraints that do not fit the field type, UI
// references without a schema entry) wrapped in ErrSchemaMisconfigured;
// MustCheck panics with the same error so static declarations fail fast
// during development instead of at submit time.
package model
