package i18n

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Messages is one language's decoded bundle. Values are nested maps, arrays and strings
// exactly as decoded from JSON. A Messages value is never mutated after loading.
type Messages map[string]any

// Record is a structured bundle entry such as {title, desc}.
type Record map[string]any

// Parse decodes a JSON bundle. The top level must be an object.
func Parse(raw []byte) (Messages, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("i18n: decode bundle: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("i18n: bundle is not an object")
	}
	return Messages(m), nil
}

// Lookup walks a dotted path ("about.how.steps"). Numeric segments index into arrays.
func (m Messages) Lookup(path string) (any, bool) {
	if m == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(m)
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// String returns the value at path when it is a string.
func (m Messages) String(path string) (string, bool) {
	v, ok := m.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the string at path, or fallback when absent or not a string.
func (m Messages) StringOr(path, fallback string) string {
	if s, ok := m.String(path); ok {
		return s
	}
	return fallback
}

// Strings returns the string entries of the array at path. Non-string entries are skipped.
func (m Messages) Strings(path string) []string {
	v, ok := m.Lookup(path)
	if !ok {
		return nil
	}
	return stringsOf(v)
}

// Records returns the object entries of the array at path. Non-object entries are skipped.
func (m Messages) Records(path string) []Record {
	v, ok := m.Lookup(path)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Record(obj))
		}
	}
	return out
}

// Section returns the object at path as its own Messages.
func (m Messages) Section(path string) (Messages, bool) {
	v, ok := m.Lookup(path)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Messages(obj), true
}

// String returns the record field as a string, or "" when absent.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Strings returns the record field as a string list.
func (r Record) Strings(key string) []string {
	return stringsOf(r[key])
}

func stringsOf(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
