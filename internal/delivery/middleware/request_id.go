package middleware

import (
	"log/slog"

	deliverycontext "todoapp/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware assigns every request an id and a logger tagged with it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process reuses a well-formed X-Request-Id from the client, otherwise generates
// one, and echoes it on the response.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := deliverycontext.ResolveRequestID(c.Request().Header.Get(deliverycontext.HeaderXRequestID))

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		reqLogger := m.logger.With(slog.String("request_id", requestID))
		ctx := deliverycontext.WithRequestScope(c.Request().Context(), requestID, reqLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
