package utils

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// WithLogger saves the logger into the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger retrieves the logger from the context, or a no-op logger if none was set.
func Logger(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}

	return zap.NewNop()
}
