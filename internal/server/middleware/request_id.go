package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const XRequestID = "x-request-id"

type requestIDKey struct{}

func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(XRequestID).(string); ok {
		return id
	}
	return RequestIDFromContext(c.Request().Context())
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID reuses the caller-supplied x-request-id header when present,
// generating one otherwise, and makes it reachable from both the echo
// context and the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(XRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), requestIDKey{}, reqID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(XRequestID, reqID)
			c.Response().Header().Set(XRequestID, reqID)

			return next(c)
		}
	}
}
