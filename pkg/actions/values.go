package actions

import (
	"fmt"
	"time"
)

// The pipeline hands actions coerced values; these helpers read them back
// without trusting the dynamic types blindly.

func stringValue(values map[string]any, key string) string {
	switch v := values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func intValue(values map[string]any, key string) (int64, error) {
	switch v := values[key].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("actions: %s: expected integer, got %T", key, values[key])
	}
}

func timeValue(values map[string]any, key string) (time.Time, error) {
	v, ok := values[key].(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("actions: %s: expected time, got %T", key, values[key])
	}
	return v, nil
}
