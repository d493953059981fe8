package handlerUtil

import (
	"context"
	"errors"

	"BatiDetect/pkg/asset"
	contextPkg "BatiDetect/pkg/context"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/log"
	"BatiDetect/pkg/response"
	"BatiDetect/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// entry tags the handler's logger with the session of c and requestID.
func (h *ErrorHandler) entry(c *fiber.Ctx, requestID string) *logrus.Entry {
	return log.WithRequestID(h.logger, contextPkg.FromFiberCtx(c)).WithField(log.RequestIDKey, requestID)
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		if respErr.Code >= fiber.StatusInternalServerError && respErr.Code != fiber.StatusServiceUnavailable {
			return h.internal(c, requestID, err, path, operation, respErr.Code)
		}
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"code":      respErr.Code,
			"path":      path,
			"operation": operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: respErr.Err.Error(), Details: err.Error()})
	}

	// Infrastructure errors that reached the handler unwrapped
	if errors.Is(err, asset.ErrAssetNotFound) {
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"path":      path,
			"operation": operation,
		}).Warn("Asset not found")
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Asset not found",
			Code:  "ASSET_NOT_FOUND",
		})
	}

	if errors.Is(err, session.ErrSessionNotFound) {
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"path":      path,
			"operation": operation,
		}).Warn("Session not found")
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Session not found",
			Code:  "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, detector.ErrInvalidCoordinate) {
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"path":      path,
			"operation": operation,
		}).Warn("Invalid coordinate")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Coordinate out of range",
			Code:  "INVALID_COORDINATE",
		})
	}

	if errors.Is(err, detector.ErrNoCoverage) {
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"path":      path,
			"operation": operation,
		}).Warn("No imagery coverage")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "No imagery coverage for this area",
			Code:  "NO_COVERAGE",
		})
	}

	if errors.Is(err, detector.ErrBackendUnavailable) {
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"path":      path,
			"operation": operation,
		}).Warn("Detection backend unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "Detection backend unavailable",
			Code:  "BACKEND_UNAVAILABLE",
		})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.entry(c, requestID).WithFields(log.Fields{
			"error":     err.Error(),
			"path":      path,
			"operation": operation,
		}).Warn("Operation timed out")
		return h.HandleRequestTimeout(c)
	}

	return h.internal(c, requestID, err, path, operation, fiber.StatusInternalServerError)
}

func (h *ErrorHandler) internal(c *fiber.Ctx, requestID string, err error, path, operation string, status int) error {
	traceID := log.ErrorWithTraceID(h.entry(c, requestID).WithFields(log.Fields{
		"error":     err.Error(),
		"path":      path,
		"operation": operation,
	}), "Unexpected error")

	return c.Status(status).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.entry(c, requestID).WithFields(log.Fields{
		"error": err.Error(),
		"path":  path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
