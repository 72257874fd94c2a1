package main

import (
	"fmt"
	"log"
	"time"

	"shade-store/internal/common/config"
	"shade-store/internal/common/logging"
	"shade-store/internal/common/middleware"
	"shade-store/internal/gateway/proxy"
	"shade-store/internal/storefront/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, "gateway")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	storefront := proxy.New(cfg.StorefrontURL, logger.Named("proxy"))
	health := handlers.NewHealthHandler(map[string]handlers.Pinger{"storefront": storefront})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    16 << 20,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("GATEWAY"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", storefront.To("/docs/openapi.yaml"))

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Shade Storefront API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	for _, prefix := range []string{"/catalog", "/quote", "/wizard", "/carts", "/visualizer"} {
		api.All(prefix, storefront.Pass())
		api.All(prefix+"/*", storefront.Pass())
	}

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting API gateway",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("storefront", cfg.StorefrontURL))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
