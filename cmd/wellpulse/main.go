package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wellpulse/wellpulse/internal/app"
	"github.com/wellpulse/wellpulse/internal/auth"
	"github.com/wellpulse/wellpulse/internal/entries"
	"github.com/wellpulse/wellpulse/internal/observability"
	"github.com/wellpulse/wellpulse/internal/platform/cache"
	"github.com/wellpulse/wellpulse/internal/platform/db"
	"github.com/wellpulse/wellpulse/internal/reports"
	reporthttp "github.com/wellpulse/wellpulse/internal/reports/http"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, tokens, cfg.BcryptCost)
	authHandler := auth.NewHandler(logger, authService)
	authResolver := auth.NewResolver(authService)
	gate := auth.NewGate(tokens)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)

	entriesRepo := entries.NewRepository(pool)
	entriesService := entries.NewService(entriesRepo, reportCache)
	entriesHandler := entries.NewHandler(logger, entriesService)

	reportService := reports.NewService(entriesRepo, reportCache)
	reportsHandler := reporthttp.NewHandler(logger, reportService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Config:         cfg,
		AuthHandler:    authHandler,
		AuthResolver:   authResolver,
		Gate:           gate,
		EntriesHandler: entriesHandler,
		ReportsHandler: reportsHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
