package logger

import (
	"context"
	"log/slog"
	"slices"
)

// ContextExtractor derives an attribute from the context a record is logged
// with. It reports false when the context carries nothing to add.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator is a slog.Handler adding context-derived attributes
// to each record before passing it on.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator decorates next with extractors, skipping nil ones.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) *LogHandlerDecorator {
	extractors = slices.DeleteFunc(slices.Clone(extractors), func(ex ContextExtractor) bool {
		return ex == nil
	})
	return &LogHandlerDecorator{next: next, extractors: extractors}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		attrs := make([]slog.Attr, 0, len(h.extractors))
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				attrs = append(attrs, attr)
			}
		}
		rec.AddAttrs(attrs...)
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.next.WithAttrs(attrs))
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return h.wrap(h.next.WithGroup(name))
}

func (h *LogHandlerDecorator) wrap(next slog.Handler) *LogHandlerDecorator {
	return &LogHandlerDecorator{next: next, extractors: h.extractors}
}
