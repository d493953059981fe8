package config

import (
	"context"
	"fmt"
	"os"

	"BatiDetect/database/postgres"
	assetHandler "BatiDetect/internal/api/asset/handler"
	assetService "BatiDetect/internal/api/asset/service"
	detectionHandler "BatiDetect/internal/api/detection/handler"
	detectionRepository "BatiDetect/internal/api/detection/repository"
	detectionService "BatiDetect/internal/api/detection/service"
	navigationHandler "BatiDetect/internal/api/navigation/handler"
	navigationService "BatiDetect/internal/api/navigation/service"
	"BatiDetect/internal/api/page"
	"BatiDetect/internal/entity"
	"BatiDetect/internal/middleware"
	"BatiDetect/pkg/asset"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/htmlview"
	"BatiDetect/pkg/session"
	"BatiDetect/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	sessions    session.IStore
	assets      asset.IAssetStore
	detector    detector.IDetector
	journal     detectionRepository.Repository
	html        *htmlview.Renderer
	handlers    []handler
	webHandlers []webHandler
}

// handler mounts JSON routes under /api/v1.
type handler interface {
	Start(srv fiber.Router)
}

// webHandler mounts browser routes at the root.
type webHandler interface {
	StartWeb(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, server.utils)
	}
	if server.sessions == nil {
		server.sessions = session.NewMemory(0)
	}
	if server.detector == nil {
		server.detector = detector.NewStub()
	}
	if server.html == nil {
		html, err := htmlview.New()
		if err != nil {
			return nil, err
		}
		server.html = html
	}
	if server.assets == nil {
		return nil, fmt.Errorf("asset store is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.utils == nil {
			return fmt.Errorf("utils must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.utils)
		return nil
	}
}

func WithSessionStore(store session.IStore) ServerOption {
	return func(s *Server) error {
		s.sessions = store
		return nil
	}
}

func WithAssetStore(store asset.IAssetStore) ServerOption {
	return func(s *Server) error {
		s.assets = store
		return nil
	}
}

func WithDetector(d detector.IDetector) ServerOption {
	return func(s *Server) error {
		s.detector = d
		return nil
	}
}

// WithJournal connects the analysis journal when DB_HOST is set and leaves
// it disabled otherwise.
func WithJournal() ServerOption {
	return func(s *Server) error {
		if !postgres.Enabled() {
			if s.log != nil {
				s.log.Info("DB_HOST not set, analysis journal disabled")
			}
			return nil
		}

		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		return WithJournalDB(db)(s)
	}
}

func WithJournalDB(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
		repo := detectionRepository.New(db, s.log)
		if err := repo.Migrate(context.Background()); err != nil {
			return fmt.Errorf("failed to migrate analysis journal: %w", err)
		}
		s.db = db
		s.journal = repo
		return nil
	}
}

func WithHTMLView() ServerOption {
	return func(s *Server) error {
		html, err := htmlview.New()
		if err != nil {
			return err
		}
		s.html = html
		return nil
	}
}

// RegisterHandler builds every domain. A menu entry without a renderer is a
// configuration error and is returned here, before the server listens.
func (s *Server) RegisterHandler() error {
	// Detection
	detectionServices := detectionService.NewDetectionService(s.log, s.detector, s.journal, s.validator, s.utils)
	detectionHandlers := detectionHandler.New(s.log, s.validator, s.middleware, detectionServices)

	// Pages and navigation
	shell, err := navigationService.NewShell(s.log, entity.DefaultMenu(), map[entity.PageName]page.Renderer{
		entity.PageContext:        page.NewContextPage(s.assets, s.log),
		entity.PageModelSelection: page.NewModelPage(detectionServices, s.validator, s.log),
		entity.PageDetectionDemo:  page.NewDemoPage(s.assets, s.log),
	})
	if err != nil {
		return fmt.Errorf("invalid navigation configuration: %w", err)
	}
	navigationHandlers := navigationHandler.New(s.log, s.validator, s.middleware, shell, s.sessions, s.html, s.utils)

	// Assets
	assetServices, err := assetService.NewAssetService(s.log, s.assets)
	if err != nil {
		return fmt.Errorf("invalid asset configuration: %w", err)
	}
	assetHandlers := assetHandler.New(s.log, s.middleware, assetServices)

	s.log.WithFields(logrus.Fields{
		"detector":      s.detector.Name(),
		"session_store": s.sessions.Name(),
		"asset_source":  s.assets.Source(),
		"journal":       s.journal != nil,
	}).Info("Handlers registered")

	s.handlers = append(s.handlers, navigationHandlers, detectionHandlers, assetHandlers)
	s.webHandlers = append(s.webHandlers, navigationHandlers, assetHandlers)
	return nil
}

// Mount installs middleware and routes. Run calls it; tests call it
// directly and drive the app through fiber's Test.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.engine.Use(s.middleware.NewRateLimiter)
	s.engine.Use(s.middleware.NewSessionMiddleware())

	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
	for _, h := range s.webHandlers {
		h.StartWeb(s.engine)
	}
}

func (s *Server) Run() error {
	s.Mount()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown drains fiber, then releases the backends.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)

	if closer, ok := s.detector.(interface{ Close() }); ok {
		closer.Close()
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
