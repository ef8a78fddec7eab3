package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// EntityType records the entity type under the key "entity_type".
func EntityType(name string) slog.Attr {
	return slog.String("entity_type", name)
}

// Variant records the entity variant under the key "variant".
func Variant(name string) slog.Attr {
	return slog.String("variant", name)
}

// Field records a field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// RunID records the validation run identifier under the key "run_id".
// If id is nil, it returns an empty Attr.
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any(RunIDKey, id)
}

// Phase records the orchestrator phase under the key "phase".
func Phase(name string) slog.Attr {
	return slog.String("phase", name)
}

// Validator records a validator name under the key "validator".
func Validator(name string) slog.Attr {
	return slog.String("validator", name)
}

// ErrorCount records the number of findings under the key "error_count".
func ErrorCount(n int) slog.Attr {
	return slog.Int("error_count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
