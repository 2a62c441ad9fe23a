// Package observability provides the process logger and request-scoped
// logging context.
package observability

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// JSON to stdout; the service name is attached once at startup via Init.
var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the process logger with the service name and returns it.
func Init(serviceName string) zerolog.Logger {
	logger = zerolog.New(os.Stdout).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
	return logger
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	return logger
}

// WithRequestID stores a request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestID returns the request id stored in the context, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// LoggerFromContext returns the process logger, tagged with the request id
// when one is present.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if id := RequestID(ctx); id != "" {
		return logger.With().Str("request_id", id).Logger()
	}
	return logger
}
