package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-eventforms/pkg/model"
)

// Input layouts for date values. Values carrying a time of day use the
// date-time layout so a re-rendered form submits the same instant.
const (
	DateInputLayout     = "2006-01-02"
	DateTimeInputLayout = "2006-01-02T15:04"
	dateTimeSecLayout   = "2006-01-02T15:04:05.999999999"
)

// FieldView is the render-ready projection of one field.
type FieldView struct {
	Name        string
	Label       string
	Control     string
	Placeholder string
	Value       string
	Error       string
	Help        string
	Options     []string
	Required    bool
}

// Control kinds.
const (
	ControlText     = "text"
	ControlNumber   = "number"
	ControlDate     = "date"
	ControlDateTime = "datetime-local"
	ControlPassword = "password"
	ControlTextArea = "textarea"
	ControlSelect   = "select"
)

// Fields projects a schema plus live state into field views in declaration
// order.
func Fields(schema model.FormSchema, options RenderOptions) []FieldView {
	out := make([]FieldView, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		value, ok := options.Values[field.Name]
		if !ok {
			value = field.Default
		}
		out = append(out, FieldView{
			Name:        field.Name,
			Label:       field.DisplayLabel(),
			Control:     controlForValue(field, value),
			Placeholder: field.Placeholder,
			Value:       FormatValue(value),
			Error:       options.Errors[field.Name],
			Help:        field.Description,
			Options:     field.Enum,
			Required:    field.Mandatory(),
		})
	}
	return out
}

// ControlFor picks the input control for a field.
func ControlFor(field model.Field) string {
	switch {
	case len(field.Enum) > 0:
		return ControlSelect
	case field.Format == model.FormatTextArea:
		return ControlTextArea
	case field.Format == model.FormatPassword:
		return ControlPassword
	case field.Type.Numeric():
		return ControlNumber
	case field.Type == model.FieldTypeDate:
		return ControlDate
	default:
		return ControlText
	}
}

func controlForValue(field model.Field, value any) string {
	control := ControlFor(field)
	if control == ControlDate && hasClock(value) {
		return ControlDateTime
	}
	return control
}

// hasClock reports whether a date value carries a time of day in local time.
func hasClock(value any) bool {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return false
		}
		h, m, s := v.In(time.Local).Clock()
		return h != 0 || m != 0 || s != 0 || v.Nanosecond() != 0
	case string:
		v = strings.TrimSpace(v)
		return len(v) > len(DateInputLayout) && v[len(DateInputLayout)] == 'T'
	default:
		return false
	}
}

// FormatValue renders a field value as input text.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		local := v.In(time.Local)
		if !hasClock(local) {
			return local.Format(DateInputLayout)
		}
		if local.Second() != 0 || local.Nanosecond() != 0 {
			return local.Format(dateTimeSecLayout)
		}
		return local.Format(DateTimeInputLayout)
	default:
		return fmt.Sprint(v)
	}
}
