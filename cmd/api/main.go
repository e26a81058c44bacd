package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bukusaku/internal/auth"
	"bukusaku/internal/config"
	"bukusaku/internal/database"
	"bukusaku/internal/database/migration"
	handlers "bukusaku/internal/http/handler"
	"bukusaku/internal/http/middleware"
	"bukusaku/internal/otel"
	"bukusaku/internal/repository/postgres"
	"bukusaku/internal/service"
	"bukusaku/internal/storage"
)

func main() {
	cfg := config.Load()
	loc := time.Local

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var objStore storage.Storage
	switch cfg.Storage.Mode {
	case config.StorageModeRemote:
		objStore, err = storage.NewMinIO(cfg.MinIO)
	default:
		objStore, err = storage.NewLocal(cfg.Storage.LocalDir)
	}
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("failed to initialize token manager: %v", err)
	}

	userRepo := postgres.NewUserPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	histRepo := postgres.NewHistoryPostgres(db)
	catRepo := postgres.NewCategoryPostgres(db)
	notifRepo := postgres.NewNotificationPostgres(db)
	favRepo := postgres.NewFavoritePostgres(db)
	tx := postgres.NewTransactor(db)

	authSvc := service.NewAuthService(userRepo, tokens, cfg.Auth.AdminPasskey)
	docSvc := service.NewDocumentService(objStore, docRepo, histRepo, notifRepo, tx, cfg.Storage.RemoteFolder)
	catSvc := service.NewCategoryService(catRepo)
	notifSvc := service.NewNotificationService(notifRepo)
	favSvc := service.NewFavoriteService(favRepo, docRepo)
	userSvc := service.NewUserService(userRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// In local mode uploaded files are served straight from disk under the
	// same path the locator resolver produces.
	if cfg.Storage.Mode != config.StorageModeRemote {
		app.Static("/uploads", cfg.Storage.LocalDir)
	}

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:            db,
		Tokens:        tokens,
		Users:         userRepo,
		Auth:          authSvc,
		Documents:     docSvc,
		Categories:    catSvc,
		Notifications: notifSvc,
		Favorites:     favSvc,
		Accounts:      userSvc,
	})

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
