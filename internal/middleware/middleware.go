package middleware

import (
	"BatiDetect/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	NewSessionMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
	GetSessionID(ctx *fiber.Ctx) string
}

type middleware struct {
	rateLimitter        *rateLimiter
	loggingMiddleware   *loggingMiddleware
	requestIDMiddleware fiber.Handler
	sessionMiddleware   fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, u utils.IUtils) Middleware {
	return &middleware{
		rateLimitter:        newRateLimiter(50, 100),
		loggingMiddleware:   newLoggingMiddleware(logger),
		requestIDMiddleware: NewRequestIDMiddleware(u),
		sessionMiddleware:   NewSessionMiddleware(u, logger),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) GetSessionID(ctx *fiber.Ctx) string {
	sessionID, _ := ctx.Locals(SessionIDKey).(string)
	return sessionID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func (m *middleware) NewSessionMiddleware() fiber.Handler {
	return m.sessionMiddleware
}
