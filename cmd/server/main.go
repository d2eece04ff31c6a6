package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/adapter/ai/groq"
	"github.com/seu-repo/jarvis-backend/internal/adapter/http/fiber/server"
	"github.com/seu-repo/jarvis-backend/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/jarvis-backend/internal/observability/telemetry"
	"github.com/seu-repo/jarvis-backend/internal/ports"
	"github.com/seu-repo/jarvis-backend/internal/service/health"
	"github.com/seu-repo/jarvis-backend/internal/service/jarvis"
	"github.com/seu-repo/jarvis-backend/internal/service/voice"
	"github.com/seu-repo/jarvis-backend/pkg/config"
	applogger "github.com/seu-repo/jarvis-backend/pkg/logger"
)

func main() {
	// 1. Bootstrap logger, used until the configured one exists
	bootLog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Configured logger
	logger, err := applogger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	logger.Info("Starting JARVIS Backend",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 4. OpenTelemetry (optional)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.App.Version, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Completion client behind the circuit breaker
	breaker := circuitbreaker.New("groq", cfg.CircuitBreaker, logger)
	httpClient := circuitbreaker.NewHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}, breaker, logger)

	completion, err := groq.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, httpClient, logger)
	if err != nil {
		logger.Fatal("Failed to initialize completion client", zap.Error(err))
	}

	// 6. Services
	params := ports.CompletionParams{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		TopP:        cfg.LLM.TopP,
	}
	questionService := jarvis.NewService(completion, params, cfg.LLM.SystemPrompt, logger)
	voiceAssistant := voice.NewVoiceAssistant(questionService, cfg.Alexa, logger)

	healthService := health.NewService(cfg.App.Name, logger)
	healthService.RegisterChecker("completion_api", health.BreakerChecker(breaker))

	// 7. HTTP server
	app := server.New(cfg, server.Services{
		Questions: questionService,
		Voice:     voiceAssistant,
		Health:    healthService,
	}, logger)

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
