package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docsafe/docs"
	"docsafe/internal/config"
	"docsafe/internal/database"
	"docsafe/internal/database/migration"
	handlers "docsafe/internal/http/handler"
	"docsafe/internal/http/middleware"
	"docsafe/internal/identity"
	"docsafe/internal/ocr"
	"docsafe/internal/otel"
	"docsafe/internal/repository/postgres"
	"docsafe/internal/service"
	"docsafe/internal/storage"
)

// @title DocSafe API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Initialize tracing before anything that emits spans
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories
	docRepo := postgres.NewDocumentPostgres(db)
	folderRepo := postgres.NewFolderPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	activityRepo := postgres.NewActivityPostgres(db)
	ocrRepo := postgres.NewOcrPostgres(db)

	// Background recognition pool
	engine := &ocr.SimulatedEngine{Delay: time.Duration(cfg.OCR.ProcessingDelay) * time.Millisecond}
	pool := ocr.NewPool(cfg.OCR, engine, docRepo, ocrRepo)
	defer pool.Shutdown()

	// Identity provider integration
	verifier := identity.NewVerifier(cfg.Identity.JWTSecret)
	providerClient := identity.NewClient(cfg.Identity)

	// Services
	presignExpiry := time.Duration(cfg.PresignExpiryMin) * time.Minute
	svcs := handlers.Services{
		Documents: service.NewDocumentService(objStore, docRepo, folderRepo, activityRepo, presignExpiry),
		Folders:   service.NewFolderService(folderRepo, activityRepo),
		Users:     service.NewUserService(providerClient, userRepo),
		Stats:     service.NewStatsService(docRepo, folderRepo),
		Charts:    service.NewChartsService(docRepo, activityRepo),
		OCR:       service.NewOcrService(docRepo, ocrRepo, pool),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, verifier, svcs)

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

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Block until interrupted, then drain HTTP before the pool shuts down
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
