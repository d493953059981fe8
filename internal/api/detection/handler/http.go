package detectionHandler

import (
	detectionService "BatiDetect/internal/api/detection/service"
	"BatiDetect/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DetectionHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	detectionService detectionService.IDetectionService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ds detectionService.IDetectionService,
) *DetectionHandler {
	return &DetectionHandler{
		detectionService: ds,
		log:              log,
		validator:        validator,
		middleware:       middleware,
	}
}

func (h *DetectionHandler) Start(srv fiber.Router) {
	detection := srv.Group("/detection")
	detection.Post("/analyze", h.Analyze)
	detection.Get("/analyses", h.GetAnalyses)
}
