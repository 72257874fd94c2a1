package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"shade-store/internal/common/config"
	"shade-store/internal/common/logging"
	"shade-store/internal/common/middleware"
	"shade-store/internal/integrations/analysis"
	"shade-store/internal/integrations/checkout"
	"shade-store/internal/integrations/email"
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/pricing"
	"shade-store/internal/storefront/handlers"
	"shade-store/internal/storefront/repository"
	"shade-store/internal/storefront/service"
	"shade-store/internal/visualizer/geometry"
	"shade-store/internal/visualizer/render"
	"shade-store/internal/visualizer/session"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Storefront Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	logger, err := logging.New(cfg.Environment, "storefront")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		logger.Fatal("load catalog", zap.String("dir", cfg.CatalogDir), zap.Error(err))
	}

	db, dialect, err := repository.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open db", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	repo := repository.New(db, dialect)
	if err := repo.Init(context.Background(), cat.Fabrics); err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	engine := pricing.NewEngine(cat)
	resolver := service.NewResolver(repo, cat.Installers)
	carts := service.NewCartService(repo, engine, resolver, cat.Shapes)
	wizards := service.NewWizardSessions(cat.Shapes, engine, resolver)

	photos := session.NewPhotoStorage(cfg.PhotoDir)
	visualizerOpts := session.Options{
		Shapes:  cat.Shapes,
		Photos:  photos,
		Timeout: cfg.AnalysisTimeout,
		Logger:  logger.Named("visualizer"),
	}
	if cfg.GeminiAPIKey != "" {
		visualizerOpts.Analyzer = analysis.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		logger.Info("GEMINI_API_KEY not set, uploaded rooms are confirmed without analysis")
	}
	visualizers := session.NewManager(geometry.MustDefaults(), visualizerOpts)

	shop := checkout.NewShopify(cfg.ShopifyStore, cfg.ShopifyToken)
	if !shop.Configured() {
		logger.Warn("SHOPIFY_STORE/SHOPIFY_TOKEN not set, checkout is disabled")
	}
	mailer := email.NewEmailJS(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey)
	if !mailer.Configured() {
		logger.Warn("EmailJS keys not set, quote emails are disabled")
	}

	routes := handlers.Handlers{
		Catalog:    handlers.NewCatalogHandler(cat, repo, engine, logger),
		Quote:      handlers.NewQuoteHandler(engine, resolver, logger),
		Wizard:     handlers.NewWizardHandler(wizards, carts, logger),
		Cart:       handlers.NewCartHandler(carts, wizards, shop, mailer, logger),
		Visualizer: handlers.NewVisualizerHandler(visualizers, photos, render.NewRenderer(), logger),
	}
	health := handlers.NewHealthHandler(map[string]handlers.Pinger{"database": repo})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    session.MaxPhotoBytes + 1<<20,
		AppName:      "Storefront Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("STOREFRONT"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")
	handlers.RegisterRoutes(api, routes)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting storefront service",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("db", string(dialect)))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
