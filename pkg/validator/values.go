package validator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
)

// referenceKeys are the members holding an identifier in structured
// reference values, in lookup order.
var referenceKeys = []string{"fid", "target_id", "tid", "id"}

// Reference extracts a stored file or entity identifier from v. Accepted
// shapes are a non-blank string, a non-negative integer, or a map carrying
// one of fid, target_id, tid or id.
func Reference(v entity.Value) (string, bool) {
	if m, ok := v.Map(); ok {
		for _, key := range referenceKeys {
			if member, ok := m[key]; ok {
				return Reference(entity.ValueOf(member))
			}
		}
		return "", false
	}

	if s, ok := v.Raw().(string); ok {
		ref := strings.TrimSpace(s)
		return ref, ref != ""
	}

	n, ok := toInt(v.Raw())
	if !ok || n < 0 {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}

// toInt converts integral numbers and numeric strings.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// toFloat converts any number or numeric string.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// toBool accepts booleans, 0 and 1, and their string forms.
func toBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return false, false
	}
	switch n, ok := toInt(v); {
	case ok && n == 1:
		return true, true
	case ok && n == 0:
		return false, true
	}
	return false, false
}
