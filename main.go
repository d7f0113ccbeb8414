package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"techmarket/internal/config"
	"techmarket/internal/database"
	"techmarket/internal/logging"
	"techmarket/internal/server"
	"techmarket/internal/services"
	"techmarket/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	app, cleanup, err := newApp(cfg)
	if err != nil {
		zap.L().Fatal("failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	// --- Start HTTP Server ---
	zap.L().Info("starting server", zap.String("addr", cfg.AppPort), zap.String("env", cfg.Environment))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			zap.L().Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	zap.L().Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		zap.L().Error("error during Fiber shutdown", zap.Error(err))
	}
	zap.L().Info("server gracefully stopped")
}

// newApp opens the store, provisions the schema, connects the optional event
// broker, and builds the HTTP application. cleanup releases what was opened.
func newApp(cfg *config.Config) (*fiber.App, func(), error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Driver == "postgres" {
		if err := database.InitSchema(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}

	// --- Initialize RabbitMQ Client ---
	// Events are best effort: an unreachable broker only disables them.
	var (
		publisher services.EventPublisher
		mqClient  *rabbitmq.Client
	)
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			zap.L().Warn("catalog events disabled", zap.Error(err))
		} else {
			publisher = mqClient
		}
	}

	app := server.New(db, server.Options{Publisher: publisher, AccessLog: true})

	cleanup := func() {
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				zap.L().Warn("failed to close RabbitMQ client", zap.Error(err))
			}
		}
		if err := database.Close(db); err != nil {
			zap.L().Warn("failed to close database", zap.Error(err))
		}
	}
	return app, cleanup, nil
}
