package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-eventforms/pkg/model"
)

// DateLayouts are the string layouts accepted for date fields, tried in order.
var DateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// Coerce normalises a raw input value to the canonical representation of the
// field type: int64 for integer fields, float64 for number fields, time.Time
// for date fields and string for string fields. Blank input for a non-string
// field becomes nil. A value that cannot be converted is returned unchanged so
// the validator reports it as a field error.
func Coerce(field model.Field, raw any) any {
	if raw == nil {
		return nil
	}
	switch field.Type {
	case model.FieldTypeInteger:
		return coerceInteger(raw)
	case model.FieldTypeNumber:
		return coerceNumber(raw)
	case model.FieldTypeDate:
		return coerceDate(raw)
	default:
		return coerceString(raw)
	}
}

// CoerceAll applies Coerce to every schema field present in values and returns
// a new map. Keys without a schema entry are copied unchanged.
func CoerceAll(schema model.FormSchema, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	for _, field := range schema.Fields {
		if value, ok := out[field.Name]; ok {
			out[field.Name] = Coerce(field, value)
		}
	}
	return out
}

func coerceString(raw any) any {
	switch v := raw.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(v)
	default:
		return raw
	}
}

func coerceInteger(raw any) any {
	switch v := raw.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v)
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v)
		}
	case float32:
		return integralFloat(float64(v), raw)
	case float64:
		return integralFloat(v, raw)
	case json.Number:
		return coerceInteger(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return integralFloat(f, raw)
		}
	}
	return raw
}

func integralFloat(f float64, raw any) any {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f >= 1<<63 || f < -(1<<63) {
		return raw
	}
	return int64(f)
}

func coerceNumber(raw any) any {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return coerceNumber(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return raw
}

func coerceDate(raw any) any {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return *v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		for _, layout := range DateLayouts {
			if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
				return t
			}
		}
	}
	return raw
}
