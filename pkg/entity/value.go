package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a field value read from an entity. The zero value is absent.
type Value struct {
	raw     any
	present bool
}

// Absent returns the value of a property the entity does not have.
func Absent() Value {
	return Value{}
}

// ValueOf wraps v, normalizing typed slices and maps.
func ValueOf(v any) Value {
	return Value{raw: normalize(v), present: true}
}

// Raw returns the underlying value: nil, a scalar, []any or map[string]any.
func (v Value) Raw() any {
	return v.raw
}

// IsPresent reports whether the property exists on the entity, even if empty.
func (v Value) IsPresent() bool {
	return v.present
}

// IsEmpty reports whether the value is absent, nil, "", an empty sequence or an
// empty map. Zero numbers and false are not empty.
func (v Value) IsEmpty() bool {
	switch raw := v.raw.(type) {
	case nil:
		return true
	case string:
		return raw == ""
	case []any:
		return len(raw) == 0
	case map[string]any:
		return len(raw) == 0
	}
	return false
}

// IsList reports whether the value is a sequence.
func (v Value) IsList() bool {
	_, ok := v.raw.([]any)
	return ok
}

// IsMap reports whether the value is a nested structure.
func (v Value) IsMap() bool {
	_, ok := v.raw.(map[string]any)
	return ok
}

// Items returns the elements of a sequence in order. A non-empty scalar or map
// is a sequence of one; an empty value has no items.
func (v Value) Items() []Value {
	if list, ok := v.raw.([]any); ok {
		items := make([]Value, len(list))
		for i, item := range list {
			items[i] = Value{raw: item, present: true}
		}
		return items
	}
	if v.IsEmpty() {
		return nil
	}
	return []Value{v}
}

// First returns the first element of a sequence, or the value itself.
func (v Value) First() Value {
	if list, ok := v.raw.([]any); ok {
		if len(list) == 0 {
			return Absent()
		}
		return Value{raw: list[0], present: true}
	}
	return v
}

// Sub returns the named member of a nested structure. On a sequence it returns
// a sequence of the members of every element, keeping positions. Empty values
// are returned unchanged, anything else without the member is absent.
func (v Value) Sub(name string) Value {
	if v.IsEmpty() {
		return v
	}

	switch raw := v.raw.(type) {
	case map[string]any:
		member, ok := raw[name]
		if !ok {
			return Absent()
		}
		return Value{raw: member, present: true}
	case []any:
		out := make([]any, len(raw))
		for i, item := range raw {
			out[i] = Value{raw: item, present: true}.Sub(name).raw
		}
		return Value{raw: out, present: true}
	}

	return Absent()
}

// Map returns the value as a nested structure.
func (v Value) Map() (map[string]any, bool) {
	m, ok := v.raw.(map[string]any)
	return m, ok
}

// String renders the value for error messages. Sequences join their elements
// with ", ".
func (v Value) String() string {
	switch raw := v.raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case []any:
		parts := make([]string, len(raw))
		for i, item := range raw {
			parts[i] = Value{raw: item, present: true}.String()
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		data, err := json.Marshal(raw)
		if err != nil {
			return fmt.Sprint(raw)
		}
		return string(data)
	}
	return fmt.Sprint(v.raw)
}

func normalize(v any) any {
	switch raw := v.(type) {
	case nil, string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	case Value:
		return raw.raw
	case []any:
		out := make([]any, len(raw))
		for i, item := range raw {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(raw))
		for k, item := range raw {
			out[k] = normalize(item)
		}
		return out
	case Document:
		return normalize(map[string]any(raw))
	case []byte:
		return string(raw)
	case []string:
		return normalizeSlice(raw)
	case []int:
		return normalizeSlice(raw)
	case []int64:
		return normalizeSlice(raw)
	case []float64:
		return normalizeSlice(raw)
	case []bool:
		return normalizeSlice(raw)
	case []map[string]any:
		return normalizeSlice(raw)
	case []Document:
		return normalizeSlice(raw)
	case map[string]string:
		out := make(map[string]any, len(raw))
		for k, item := range raw {
			out[k] = item
		}
		return out
	case *string:
		if raw == nil {
			return nil
		}
		return *raw
	}

	return v
}

func normalizeSlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = normalize(item)
	}
	return out
}
