package navigationHandler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"BatiDetect/internal/api/navigation"
	navigationService "BatiDetect/internal/api/navigation/service"
	"BatiDetect/internal/entity"
	contextPkg "BatiDetect/pkg/context"
	"BatiDetect/pkg/log"
	"BatiDetect/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Une erreur interne est survenue."

func (h *NavigationHandler) GetApp(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	log.WithRequestID(h.log, c).WithFields(log.Fields{
		"path": ctx.Path(),
	}).Debug("Processing app page request")

	action := entity.Redraw()
	if slug := ctx.Query("page"); slug != "" {
		action = entity.Action{Kind: entity.ActionNavigate, Page: navigation.ResolvePage(slug)}
	}

	return h.respondHTML(ctx, c, action)
}

func (h *NavigationHandler) PostAppAction(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	log.WithRequestID(h.log, c).WithFields(log.Fields{
		"path":   ctx.Path(),
		"action": ctx.FormValue("action"),
	}).Debug("Processing app action request")

	action, err := h.formAction(ctx)
	if err != nil {
		return h.redrawWithError(ctx, c, err)
	}

	return h.respondHTML(ctx, c, action)
}

func (h *NavigationHandler) formAction(ctx *fiber.Ctx) (entity.Action, error) {
	req := navigation.ActionRequest{
		Kind: ctx.FormValue("action"),
		Page: ctx.FormValue("page"),
		Mode: ctx.FormValue("mode"),
	}
	if req.Kind == "" {
		req.Kind = string(entity.ActionRedraw)
	}

	for _, field := range []struct {
		name string
		dst  **float64
	}{
		{"latitude", &req.Latitude},
		{"longitude", &req.Longitude},
	} {
		raw := ctx.FormValue(field.name)
		if raw == "" {
			continue
		}
		v, err := h.utils.ParseDecimal(raw)
		if err != nil {
			return entity.Action{}, fmt.Errorf("%w: %s %q", navigation.ErrInvalidAction, field.name, raw)
		}
		*field.dst = &v
	}

	return h.toAction(req)
}

func (h *NavigationHandler) respondHTML(ctx *fiber.Ctx, c context.Context, action entity.Action) error {
	_, view, err := h.dispatch(c, h.middleware.GetSessionID(ctx), action)
	if err != nil {
		if response.StatusOf(err, http.StatusInternalServerError) < http.StatusInternalServerError {
			return h.redrawWithError(ctx, c, err)
		}
		return h.renderFailure(ctx, err, "dispatch")
	}

	return h.writeHTML(ctx, fiber.StatusOK, view)
}

// redrawWithError keeps the session untouched and shows the current page
// with the rejection on top.
func (h *NavigationHandler) redrawWithError(ctx *fiber.Ctx, c context.Context, cause error) error {
	log.WithRequestID(h.log, c).WithFields(log.Fields{
		"path":  ctx.Path(),
		"error": cause.Error(),
	}).Warn("Action rejected")

	_, view, err := h.dispatch(c, h.middleware.GetSessionID(ctx), entity.Redraw())
	if err != nil {
		return h.renderFailure(ctx, err, "redraw")
	}

	view.Blocks = append([]entity.Block{{Kind: entity.BlockError, Text: userMessage(cause)}}, view.Blocks...)
	return h.writeHTML(ctx, response.StatusOf(cause, fiber.StatusBadRequest), view)
}

func (h *NavigationHandler) writeHTML(ctx *fiber.Ctx, status int, view *entity.View) error {
	var buf bytes.Buffer
	if err := h.html.Render(&buf, view); err != nil {
		return h.renderFailure(ctx, err, "render_html")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(status).Send(buf.Bytes())
}

func (h *NavigationHandler) renderFailure(ctx *fiber.Ctx, err error, operation string) error {
	traceID := log.ErrorWithTraceID(log.WithRequestID(h.log, contextPkg.FromFiberCtx(ctx)).WithFields(log.Fields{
		"path":      ctx.Path(),
		"operation": operation,
		"error":     err.Error(),
	}), "Failed to render page")

	var buf bytes.Buffer
	if rerr := h.html.RenderError(&buf, navigationService.AppTitle, fiber.StatusInternalServerError, internalErrorMessage, traceID); rerr != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(internalErrorMessage)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(fiber.StatusInternalServerError).Send(buf.Bytes())
}
