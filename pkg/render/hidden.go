package render

import (
	"fmt"
	"strings"
)

// HiddenField is a hidden input emitted with a form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHidden appends extras to base. Empty names are dropped and later
// fields win on name collisions while keeping the first position.
func MergeHidden(base []HiddenField, extras ...HiddenField) []HiddenField {
	index := make(map[string]int, len(base)+len(extras))
	out := make([]HiddenField, 0, len(base)+len(extras))
	for _, field := range append(append([]HiddenField(nil), base...), extras...) {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		field.Name = name
		if at, ok := index[name]; ok {
			out[at] = field
			continue
		}
		index[name] = len(out)
		out = append(out, field)
	}
	return out
}
