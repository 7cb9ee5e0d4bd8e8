package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productsapi/internal/app"
	"productsapi/internal/config"
	"productsapi/internal/database"
	"productsapi/internal/handlers"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/pkg/logger"
	"productsapi/pkg/rabbitmq"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// --- Store ---
	repo, health, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Events ---
	var publisher services.EventPublisher = services.NopPublisher{}
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
		if err != nil {
			return fmt.Errorf("initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Warn("Error closing RabbitMQ client", zap.Error(err))
			}
		}()
		publisher = services.NewQueuePublisher(mqClient)
	}

	// --- HTTP ---
	server := app.New(app.Options{
		Config:     cfg,
		Logger:     log,
		Repository: repo,
		Publisher:  publisher,
		Health:     health,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.AppPort))
		listenErr <- server.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("Error during Fiber shutdown", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
	return nil
}

// openStore connects and migrates the configured store. The returned close
// function releases it.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories.ProductRepository, handlers.Pinger, func(), error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Warn("Using in-memory product store; data is lost on restart")
		return repositories.NewMemoryProductRepository(), nil, func() {}, nil
	}

	db, err := database.Open(ctx, database.Config{
		Driver: cfg.DatabaseDriver,
		URL:    cfg.DatabaseURL,
		Debug:  cfg.DatabaseDebug,
	}, log)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	log.Info("Database schema synchronized")

	closeFn := func() {
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}
	ping := handlers.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) })
	return repositories.NewGORMProductRepository(db), ping, closeFn, nil
}
