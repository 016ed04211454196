package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key request-scoped loggers travel under.
type loggerKey struct{}

// Inject returns a child context carrying l, typically a request logger
// already annotated with the request id.
func Inject(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger carried by ctx. Code that runs outside a
// request, or before injection, gets a no-op logger rather than nil.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
