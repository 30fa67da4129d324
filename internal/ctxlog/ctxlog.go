// Package ctxlog carries a slog.Logger through context.Context so every
// derivation step logs through the logger its invocation was built with.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to avoid collisions with other packages' context keys.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from a context. A missing logger is a
// wiring bug, not a runtime condition, so it panics.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}
