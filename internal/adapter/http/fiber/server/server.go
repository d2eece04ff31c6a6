package server

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/jarvis-backend/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/jarvis-backend/internal/ports"
	"github.com/seu-repo/jarvis-backend/internal/service/health"
	"github.com/seu-repo/jarvis-backend/pkg/config"
)

// Services are the application services the HTTP layer exposes.
type Services struct {
	Questions ports.QuestionService
	Voice     ports.VoiceService
	Health    *health.Service
}

// New builds the fiber app with middleware and every route mounted.
func New(cfg *config.Config, svc Services, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.NewCORS(cfg.CORS))

	if cfg.Prometheus.Enabled {
		app.Use(middleware.Metrics())

		metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metrics(c.Context())
			return nil
		})
	}

	health.NewFiberHandler(svc.Health).RegisterRoutes(app)
	handlers.NewJarvisHandler(svc.Questions, svc.Health, logger).RegisterRoutes(app)
	handlers.NewVoiceHandler(svc.Voice, logger).RegisterRoutes(app)

	return app
}
