package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KeliLabs/cryptoview/internal/adapters/blockchair"
	"github.com/KeliLabs/cryptoview/internal/adapters/cache"
	v1 "github.com/KeliLabs/cryptoview/internal/adapters/handler/http/v1"
	"github.com/KeliLabs/cryptoview/internal/adapters/repository/postgres"
	"github.com/KeliLabs/cryptoview/internal/config"
	"github.com/KeliLabs/cryptoview/internal/core/port"
	"github.com/KeliLabs/cryptoview/internal/core/service/health"
	"github.com/KeliLabs/cryptoview/internal/core/service/insights"
	"github.com/KeliLabs/cryptoview/internal/core/service/refresh"

	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
)

type App struct {
	cfg         *config.Config
	router      *http.ServeMux
	db          *sql.DB
	redisClient *redis.Client
	httpServer  *http.Server

	// Services
	refreshService  port.RefreshService
	insightsService port.InsightsService
	healthService   port.HealthService

	// For graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (app *App) Initialize() error {
	slog.Info("Initializing application...")
	app.router = http.NewServeMux()

	// Database connection
	dbConn, err := postgres.NewDbConnInstance(&app.cfg.Repository)
	if err != nil {
		slog.Error("Connection to database failed", "error", err)
		return err
	}
	app.db = dbConn
	slog.Info("Database connected successfully")

	// Schema bootstrap and catalog seeding
	bootCtx, bootCancel := context.WithTimeout(app.ctx, 30*time.Second)
	defer bootCancel()
	if err := postgres.Bootstrap(bootCtx, app.db); err != nil {
		slog.Error("Database bootstrap failed", "error", err)
		return err
	}

	// Redis connection. Built once here and injected; the cache is advisory,
	// so a failed connection means running without it, not failing startup.
	redisClient := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", app.cfg.Cache.RedisHost, app.cfg.Cache.RedisPort),
		Password:     app.cfg.Cache.RedisPassword,
		DB:           app.cfg.Cache.RedisDB,
		PoolSize:     app.cfg.Cache.PoolSize,
		MinIdleConns: app.cfg.Cache.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cacheAdapter port.Cache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis connection failed, continuing without cache", "error", err)
		app.redisClient = nil
		cacheAdapter = nil
	} else {
		app.redisClient = redisClient
		cacheAdapter = cache.NewRedisAdapter(redisClient)
		slog.Info("Redis connected successfully")
	}

	// Upstream statistics client
	statsClient := blockchair.NewClient(
		app.cfg.Upstream.BaseURL,
		app.cfg.Upstream.APIKey,
		time.Duration(app.cfg.Upstream.TimeoutSeconds)*time.Second,
	)

	// Repositories
	assetRepo := postgres.NewAssetRepo(app.db)
	snapshotRepo := postgres.NewSnapshotRepo(app.db)
	insightsRepo := postgres.NewInsightsRepo(app.db)

	// Services
	app.refreshService = refresh.NewService(cacheAdapter, assetRepo, snapshotRepo, statsClient, app.cfg.Refresh.Workers)
	app.insightsService = insights.NewService(assetRepo, insightsRepo)
	app.healthService = health.NewHealthService(app.db, cacheAdapter, statsClient)

	// Handlers (adapters layer)
	cryptoHandler := v1.NewCryptoHandler(app.refreshService)
	insightsHandler := v1.NewInsightsHandler(app.insightsService)
	healthHandler := v1.NewHealthHandler(app.healthService)
	diagnosticHandler := v1.NewDiagnosticHandler(statsClient)

	// Routes
	v1.SetDashboardRoutes(app.router, cryptoHandler, insightsHandler, healthHandler)
	v1.SetDiagnosticRoutes(app.router, diagnosticHandler)

	slog.Info("Application initialized successfully")
	return nil
}

func (app *App) Run() {
	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.App.Port),
		Handler: app.router,
	}

	slog.Info("Starting server", "port", app.cfg.App.Port)

	if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server error", "error", err)
		return
	}
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	slog.Info("Shutting down application...")

	app.cancel()

	if app.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.httpServer.Shutdown(ctx); err != nil {
			slog.Error("Failed to shut down HTTP server", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}
