package assetHandler

import (
	"context"
	"time"

	assetDomain "BatiDetect/internal/api/asset"
	contextPkg "BatiDetect/pkg/context"
	"BatiDetect/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
)

const cacheControl = "public, max-age=3600"

func (h *AssetHandler) ListAssets(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	infos, err := h.assetService.List(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_assets")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, assetDomain.AssetsResponse{Data: infos})
}

func (h *AssetHandler) GetAsset(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	content, err := h.assetService.Open(c, ctx.Params("key"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_asset")
	}

	return h.send(ctx, content)
}

func (h *AssetHandler) GetDemoOverlay(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 20*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	content, err := h.assetService.DemoOverlay(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "demo_overlay")
	}

	return h.send(ctx, content)
}

func (h *AssetHandler) send(ctx *fiber.Ctx, content *assetDomain.Content) error {
	ctx.Set(fiber.HeaderContentType, content.ContentType)
	ctx.Set(fiber.HeaderCacheControl, cacheControl)
	return ctx.Status(fiber.StatusOK).Send(content.Body)
}
