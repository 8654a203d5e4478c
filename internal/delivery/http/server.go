package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/store-locator/internal/config"
	"github.com/store-locator/internal/delivery/http/handler"
	"github.com/store-locator/internal/delivery/http/middleware"
	pkgerrors "github.com/store-locator/internal/pkg/errors"
	"github.com/store-locator/internal/pkg/metrics"
	"github.com/store-locator/internal/pkg/utils"
)

// HealthChecker - зависимость, состояние которой отдается в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	storeHandler *handler.StoreHandler
	checks       map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	storeHandler *handler.StoreHandler,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Store Locator",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		storeHandler: storeHandler,
		checks:       checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Store routes; "nearest" must be registered before the :storeId param route
	api.Get("/stores/nearest", s.storeHandler.FindNearestStores)
	api.Get("/stores/:storeId", s.storeHandler.GetStoreDetails)
}

// health - проверка доступности зависимостей
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now().UTC(),
	})
}

// App - доступ к fiber.App (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок (неизвестные маршруты, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			logger.Debug("HTTP Error", zap.String("path", c.Path()), zap.Int("status", e.Code), zap.Error(err))
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: pkgerrors.New(codeForStatus(e.Code), e.Message, e.Code),
			})
		}

		logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Error(err))
		return utils.SendError(c, err)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return pkgerrors.CodeResourceNotFound
	case fiber.StatusBadRequest:
		return pkgerrors.CodeInvalidRequest
	default:
		if status >= fiber.StatusInternalServerError {
			return pkgerrors.CodeUnexpected
		}
		return "HTTP_ERROR"
	}
}
