package assetHandler

import (
	assetService "BatiDetect/internal/api/asset/service"
	"BatiDetect/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssetHandler struct {
	log          *logrus.Logger
	middleware   middleware.Middleware
	assetService assetService.IAssetService
}

func New(log *logrus.Logger, middleware middleware.Middleware, as assetService.IAssetService) *AssetHandler {
	return &AssetHandler{
		log:          log,
		middleware:   middleware,
		assetService: as,
	}
}

// Start mounts the asset listing under the API router.
func (h *AssetHandler) Start(srv fiber.Router) {
	srv.Get("/assets", h.ListAssets)
}

// StartWeb mounts the raw files the pages link to.
func (h *AssetHandler) StartWeb(srv fiber.Router) {
	assets := srv.Group("/assets")
	assets.Get("/overlay/demo.png", h.GetDemoOverlay)
	assets.Get("/:key", h.GetAsset)
}
