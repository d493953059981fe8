package detectionHandler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"BatiDetect/internal/api/detection"
	"BatiDetect/internal/entity"
	contextPkg "BatiDetect/pkg/context"
	"BatiDetect/pkg/handlerUtil"
	"BatiDetect/pkg/log"

	"github.com/gofiber/fiber/v2"
)

func (h *DetectionHandler) Analyze(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	log.WithRequestID(h.log, c).WithFields(log.Fields{
		"path": ctx.Path(),
	}).Debug("Processing analyze request")

	var req detection.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("invalid request body"), ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	mode := entity.InputMode(req.Mode)
	if mode == "" {
		mode = entity.InputModeManual
	}

	result, err := h.detectionService.Analyze(c, detection.Analysis{
		SessionID: h.middleware.GetSessionID(ctx),
		Mode:      mode,
		Point:     entity.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude},
	})
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, detection.AnalyzeResponse{Data: *result})
	}
}

func (h *DetectionHandler) GetAnalyses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit, err := strconv.Atoi(ctx.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	// Without ?session=mine the journal of every session is listed.
	sessionID := ""
	if ctx.Query("session") == "mine" {
		sessionID = h.middleware.GetSessionID(ctx)
	}

	records, err := h.detectionService.RecentAnalyses(c, sessionID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_analyses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, detection.AnalysesResponse{Data: records})
	}
}
