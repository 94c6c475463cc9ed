package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey struct{}

var loggerKey contextKey

// echoLoggerKey is where the request-id middleware stashes the
// request-scoped logger on the echo context.
const echoLoggerKey = "logger"

// WithRequestID returns a child logger tagged with the request id.
func WithRequestID(log *zap.Logger, requestID string) *zap.Logger {
	return log.With(zap.String("request_id", requestID))
}

// WithContext attaches the logger to the context so service-layer code can
// log with request-scoped fields.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger from the context, falling back to the
// global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return log
	}
	return GetLogger()
}

// FromEcho retrieves the request-scoped logger. Outside the request pipeline
// it falls back to the global logger, tagged with the incoming request id
// header when one is present.
func FromEcho(c echo.Context) *zap.Logger {
	if log, ok := c.Get(echoLoggerKey).(*zap.Logger); ok {
		return log
	}
	if id := c.Request().Header.Get("X-Request-ID"); id != "" {
		return WithRequestID(GetLogger(), id)
	}
	return GetLogger()
}
