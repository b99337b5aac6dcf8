package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mechadex/internal/config"
	"mechadex/internal/database"
	"mechadex/internal/logger"
	"mechadex/internal/server"
	"mechadex/internal/services"
	"mechadex/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel), os.Stderr)

	if err := run(cfg); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("Server stopped")
}

func run(cfg *config.Config) error {
	// --- Storage ---
	var repos server.Repositories
	if cfg.DatabaseDriver == config.DriverMemory {
		logger.Warningf("Using in-memory storage; data is lost on exit")
		repos = server.NewMemoryRepositories()
	} else {
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.IsDevelopment())
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				logger.Errorf("Error closing database: %v", err)
			}
		}()
		if err := database.Migrate(db); err != nil {
			return err
		}
		repos = server.NewGORMRepositories(db)
	}

	// --- Catalogue events ---
	// publisher stays a nil interface when events are disabled
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:       cfg.RabbitMQURL,
			Exchanges: []string{services.CatalogExchange},
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Errorf("Error closing RabbitMQ client: %v", err)
			}
		}()
		publisher = mqClient
	} else {
		logger.Infof("RABBITMQ_URL not set; catalogue events are disabled")
	}

	app := server.NewApp(cfg, repos, publisher)

	// --- Start HTTP Server ---
	logger.Infof("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case <-quit:
		logger.Infof("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Errorf("Error during Fiber shutdown: %v", err)
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}
	return nil
}
