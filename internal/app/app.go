package app

import (
	"productsapi/internal/config"
	"productsapi/internal/handlers"
	"productsapi/internal/middleware"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serviceName = "products-api"

// Options are the dependencies of the HTTP application. The store is owned by
// the caller, which is responsible for opening and closing it.
type Options struct {
	Config     *config.Config
	Logger     *zap.Logger
	Repository repositories.ProductRepository
	Publisher  services.EventPublisher
	Health     handlers.Pinger

	// DisableAccessLog turns off the per-request log line.
	DisableAccessLog bool
}

// New builds the Fiber application with every route registered.
func New(opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.FrontendURL != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.FrontendURL,
		}))
	}
	if !opts.DisableAccessLog {
		app.Use(logger.New())
	}
	if cfg.MetricsEnabled {
		metrics := middleware.NewMetrics(serviceName)
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	productService := services.NewProductService(opts.Repository, opts.Publisher, log)
	productHandler := handlers.NewProductHandler(productService, log)
	healthHandler := handlers.NewHealthHandler(opts.Health)

	healthHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app, validation.New())

	return app
}
