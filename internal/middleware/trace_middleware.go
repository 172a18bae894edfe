package middleware

import (
	"context"

	"bookRecSystem/business/recommend"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestTrace assigns every request a trace id, exposes it in the
// X-Request-ID response header and plants it in the request context for
// the recommendation path's debug logging.
func RequestTrace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(echo.HeaderXRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommend.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, traceID)

			return next(c)
		}
	}
}
