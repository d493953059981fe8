package navigationHandler

import (
	navigationService "BatiDetect/internal/api/navigation/service"
	"BatiDetect/internal/middleware"
	"BatiDetect/pkg/htmlview"
	"BatiDetect/pkg/session"
	"BatiDetect/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type NavigationHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	shell      navigationService.IShell
	sessions   session.IStore
	html       *htmlview.Renderer
	utils      utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	shell navigationService.IShell,
	sessions session.IStore,
	html *htmlview.Renderer,
	utils utils.IUtils,
) *NavigationHandler {
	return &NavigationHandler{
		log:        log,
		validator:  validator,
		middleware: middleware,
		shell:      shell,
		sessions:   sessions,
		html:       html,
		utils:      utils,
	}
}

// Start mounts the JSON and websocket API under srv.
func (h *NavigationHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Get("/pages", h.GetPages)

	sessions := srv.Group("/session")
	sessions.Get("", h.GetSession)
	sessions.Post("/actions", h.PostAction)
	sessions.Use("/ws", wsMiddleware)
	sessions.Get("/ws", websocket.New(h.handleSessionWebSocket))
}

// StartWeb mounts the browser pages.
func (h *NavigationHandler) StartWeb(srv fiber.Router) {
	srv.Get("/app", h.GetApp)
	srv.Post("/app/action", h.PostAppAction)
}
