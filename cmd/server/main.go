package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/cache"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/config"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/database"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/logging"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/routes"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if err := database.EnsureInitialAdmin(database.DB, cfg); err != nil {
		slog.Error("initial admin seeding failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records are also batched into system_logs
	dbLogHandler := logging.NewDBHandler(database.DB, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(logging.StdoutHandler(), dbLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Optional stats cache
	var (
		statsCache  services.StatsCache
		cachePinger handlers.Pinger
		redisCache  *cache.RedisCache
	)
	if cfg.RedisURL != "" {
		rc, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, stats cache disabled", "error", err)
		} else {
			redisCache = rc
			statsCache = rc
			cachePinger = rc
			slog.Info("stats cache enabled", "ttl", cfg.StatsCacheTTL.String())
		}
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	catalogService := services.NewCatalogService(database.DB)
	favoriteService := services.NewFavoriteService(database.DB, catalogService)
	bookingService := services.NewBookingService(database.DB)
	dashboardService := services.NewDashboardService(database.DB, statsCache, cfg.StatsCacheTTL)
	userService := services.NewUserService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	modelHandler := handlers.NewModelHandler(catalogService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminUserHandler := handlers.NewAdminUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(database.DB, cachePinger)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, authHandler, modelHandler, favoriteHandler, bookingHandler,
		dashboardHandler, adminUserHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Success: false, Message: message})
}
