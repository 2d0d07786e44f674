package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"famick/docs"
	"famick/internal/auth"
	"famick/internal/cloud"
	"famick/internal/config"
	"famick/internal/database"
	"famick/internal/database/migration"
	handlers "famick/internal/http/handler"
	"famick/internal/http/middleware"
	"famick/internal/lookup"
	"famick/internal/otel"
	"famick/internal/repository/postgres"
	"famick/internal/service"
	"famick/internal/storage"
)

// @title Famick API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx := context.Background()

	// Tracing is a no-op unless OTEL_ENABLED is set.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		log.Fatalf("failed to initialize token issuer: %v", err)
	}

	// Outbound HTTP calls share one traced client.
	httpClient := &http.Client{
		Timeout:   time.Duration(cfg.Lookup.TimeoutSec) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	cloudClient, err := cloud.NewClient(cfg.Cloud, httpClient)
	if err != nil {
		log.Fatalf("failed to initialize cloud client: %v", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserPostgres(db)
	productRepo := postgres.NewProductPostgres(db)
	stockRepo := postgres.NewStockPostgres(db)
	shoppingRepo := postgres.NewShoppingPostgres(db)
	transferRepo := postgres.NewTransferPostgres(db)
	attachmentRepo := postgres.NewAttachmentPostgres(db)

	// External lookup providers in priority order after the local catalog.
	externalProviders := []lookup.Provider{
		lookup.NewOpenFoodFacts(cfg.Lookup.OpenFoodFactsBaseURL, httpClient),
		lookup.NewFoodDataCentral(cfg.Lookup.FDCBaseURL, cfg.Lookup.FDCAPIKey, httpClient),
	}

	svcs := handlers.Services{
		Auth:        service.NewAuthService(userRepo, issuer),
		Products:    service.NewProductService(productRepo, externalProviders...),
		Stock:       service.NewStockService(stockRepo),
		Shopping:    service.NewShoppingService(shoppingRepo),
		Transfers:   service.NewTransferService(transferRepo, productRepo, stockRepo, cloudClient, cfg.Cloud.MaxAttempts),
		Attachments: service.NewAttachmentService(objStore, attachmentRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, issuer, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
