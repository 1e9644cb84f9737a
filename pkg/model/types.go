package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeDate    FieldType = "date"
)

// Numeric reports whether values of the type are normalised to numbers.
func (t FieldType) Numeric() bool {
	return t == FieldTypeInteger || t == FieldTypeNumber
}

func (t FieldType) valid() bool {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeDate:
		return true
	default:
		return false
	}
}

// Format hints understood by the input surfaces.
const (
	FormatTextArea = "textarea"
	FormatPassword = "password"
)

// Field models an individual input inside a form. Struct fields are
// annotated so renderers and exporters can serialise them directly.
type Field struct {
	Name        string       `json:"name"`
	Type        FieldType    `json:"type"`
	Format      string       `json:"format,omitempty"`
	Label       string       `json:"label,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Description string       `json:"description,omitempty"`
	Default     any          `json:"default,omitempty"`
	Enum        []string     `json:"enum,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
}

// Required reports whether the field carries a Required constraint.
func (f Field) Required() bool {
	_, ok := f.Constraint(ConstraintRequired)
	return ok
}

// Mandatory reports whether an empty value can never pass: the field is
// Required or has a positive minimum length.
func (f Field) Mandatory() bool {
	if f.Required() {
		return true
	}
	c, ok := f.Constraint(ConstraintMinLength)
	return ok && c.Length > 0
}

// Constraint returns the first constraint of the given kind.
func (f Field) Constraint(kind ConstraintKind) (Constraint, bool) {
	for _, c := range f.Constraints {
		if c.Kind == kind {
			return c, true
		}
	}
	return Constraint{}, false
}

// DisplayLabel returns the declared label or one derived from the name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// FormSchema is the static declaration of a single form.
type FormSchema struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SubmitLabel string  `json:"submitLabel,omitempty"`
	Fields      []Field `json:"fields"`
}

// Field looks a field up by name.
func (s FormSchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names lists the field names in declaration order.
func (s FormSchema) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Defaults returns the initial value map for a freshly mounted form. Fields
// without a declared default start as nil.
func (s FormSchema) Defaults() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.Default
	}
	return out
}
