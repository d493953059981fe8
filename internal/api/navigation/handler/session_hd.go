package navigationHandler

import (
	"context"
	"errors"
	"time"

	"BatiDetect/internal/api/navigation"
	contextPkg "BatiDetect/pkg/context"
	"BatiDetect/pkg/handlerUtil"
	"BatiDetect/pkg/log"
	"BatiDetect/pkg/session"

	"github.com/gofiber/fiber/v2"
)

func (h *NavigationHandler) GetPages(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	pages := h.shell.Pages()
	resp := navigation.PagesResponse{Data: make([]navigation.PageResponse, 0, len(pages))}
	for _, name := range pages {
		resp.Data = append(resp.Data, navigation.PageResponse{Name: name, Slug: name.Slug()})
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *NavigationHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	state, err := session.LoadOrNew(c, h.sessions, h.middleware.GetSessionID(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "load_session")
	}
	state.Page = h.shell.Current(state)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, navigation.SessionResponse{Data: state})
	}
}

func (h *NavigationHandler) PostAction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	log.WithRequestID(h.log, c).WithFields(log.Fields{
		"path": ctx.Path(),
	}).Debug("Processing session action request")

	var req navigation.ActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("invalid request body"), ctx.Path())
	}

	action, err := h.toAction(req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_action")
	}

	_, view, err := h.dispatch(c, h.middleware.GetSessionID(ctx), action)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "dispatch_"+string(action.Kind))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, navigation.ViewResponse{Data: view})
	}
}
