package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
