// Package context carries the request scope, the request id and the
// request-scoped logger, from the delivery layer down to services and stores.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

const maxRequestIDLength = 128

// ResolveRequestID returns the client supplied id when it is safe to echo back
// and log, or a fresh UUID otherwise.
func ResolveRequestID(candidate string) string {
	if candidate == "" || len(candidate) > maxRequestIDLength {
		return uuid.NewString()
	}
	for _, r := range candidate {
		if !isRequestIDRune(r) {
			return uuid.NewString()
		}
	}

	return candidate
}

func isRequestIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.', r == ':':
		return true
	}

	return false
}

// WithRequestScope stores both the request id and the request logger.
func WithRequestScope(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	return WithLogger(WithRequestID(ctx, requestID), logger)
}

// Detach keeps the request scope but drops cancellation, for work that must
// finish after the client has gone.
func Detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// RequestIDFromEcho returns the request id stored on the echo.Context, or "".
func RequestIDFromEcho(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok {
		return id
	}

	return ""
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request id carried by ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLoggerOrDefault returns the request logger carried by ctx, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
