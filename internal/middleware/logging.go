package middleware

import (
	"time"

	"BatiDetect/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type loggingMiddleware struct {
	logger *logrus.Logger
}

func newLoggingMiddleware(logger *logrus.Logger) *loggingMiddleware {
	return &loggingMiddleware{
		logger: logger,
	}
}

func (m *middleware) NewLoggingMiddleware() fiber.Handler {
	return m.loggingMiddleware.handle
}

func (l *loggingMiddleware) handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	latency := time.Since(start)
	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
	}

	requestID, ok := c.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		requestID = "unknown"
	}

	fields := log.Fields{
		log.RequestIDKey: requestID,
		"method":         c.Method(),
		"path":           c.Path(),
		"status":         status,
		"latency_ms":     latency.Milliseconds(),
		"ip":             c.IP(),
		"user_agent":     c.Get("User-Agent"),
		"response_size":  len(c.Response().Body()),
	}
	if sessionID, ok := c.Locals(SessionIDKey).(string); ok && sessionID != "" {
		fields[log.SessionIDKey] = sessionID
	}

	entry := l.logger.WithFields(fields)
	if status >= 500 {
		entry.Error("Server error")
	} else if status >= 400 {
		entry.Warn("Client error")
	} else {
		entry.Info("Success")
	}

	return err
}
