package logger

import (
	"context"
	"log/slog"
)

// RunIDKey is the attribute key of validation run identifiers.
const RunIDKey = "run_id"

type runIDKey struct{}

// WithRunID stores a validation run identifier in ctx. Loggers created by New
// add it to every record logged with that context.
func WithRunID(ctx context.Context, id any) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	id := ctx.Value(runIDKey{})
	return id, id != nil
}

func runIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := RunIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return RunID(id), true
}
