package tasks

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Params is a task invocation's `with` block. Values arrive from YAML or
// JSON, so numbers may be int, int64, or float64 depending on the decoder.
type Params map[string]interface{}

// String returns the parameter as a string. Numeric values are formatted so
// identifiers can be given either way in a flow file.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprintf("%v", v)
}

// Int returns the parameter as an int, zero when absent or non-numeric.
func (p Params) Int(key string) int {
	switch t := p[key].(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return 0
}

// Bytes returns the parameter as a raw byte payload for binary routes.
func (p Params) Bytes(key string) []byte {
	switch t := p[key].(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	}
	return nil
}

// Has reports whether the parameter is present and non-empty.
func (p Params) Has(key string) bool {
	return p.String(key) != ""
}

// Value returns the raw parameter for body construction.
func (p Params) Value(key string) (interface{}, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}
