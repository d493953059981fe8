package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	SessionIDKey ctxKey = "session_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

func GetSessionID(ctx context.Context) string {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}

// FromFiberCtx carries the request and session ids set by middleware into a
// plain context for service calls.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()

	requestID, ok := c.Locals("X-Request-ID").(string)
	if !ok || requestID == "" {
		requestID = c.Get("X-Request-ID")

		if requestID == "" {
			requestID = "unknown"
		}
	}
	ctx = WithRequestID(ctx, requestID)

	if sessionID, ok := c.Locals("session_id").(string); ok && sessionID != "" {
		ctx = WithSessionID(ctx, sessionID)
	}

	return ctx
}
