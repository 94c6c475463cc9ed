package middleware

import (
	"marketplace-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set("X-Request-ID", requestID)
		}

		// Add request ID to response header
		c.Response().Header().Set("X-Request-ID", requestID)

		// Request-scoped logger for handlers and, via the request context,
		// for service-layer code.
		ctxLogger := logger.WithRequestID(logger.GetLogger(), requestID)
		c.Set("logger", ctxLogger)
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithContext(req.Context(), ctxLogger)))

		return next(c)
	}
}
