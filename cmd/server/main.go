package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spidyshivam/webhook-repo/internal/api"
	"github.com/spidyshivam/webhook-repo/internal/config"
	"github.com/spidyshivam/webhook-repo/internal/ratelimit"
	"github.com/spidyshivam/webhook-repo/internal/store"
	"github.com/spidyshivam/webhook-repo/internal/webhook"
	ws "github.com/spidyshivam/webhook-repo/internal/websocket"
	"github.com/spidyshivam/webhook-repo/migrations"
	"github.com/spidyshivam/webhook-repo/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var eventStore api.EventStore
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		eventStore = store.NewMemory()
		logger.Warn("using in-memory event store, events are lost on restart")
	default:
		pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL, int32(cfg.DatabaseMaxConns))
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()
		logger.Info("connected to PostgreSQL")

		if err := pgStore.RunMigrations(ctx, migrations.FS); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrations applied")
		eventStore = pgStore
	}

	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := store.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		logger.Info("connected to Redis")
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute, logger)
	} else {
		limiter = ratelimit.NewLocalLimiter(cfg.RateLimitPerMinute)
	}

	verifier := webhook.NewVerifier(cfg.WebhookSecret)
	if !verifier.Enabled() {
		logger.Warn("GITHUB_WEBHOOK_SECRET not configured, signature verification is disabled")
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	router := api.NewRouter(api.Deps{
		Store:      eventStore,
		Verifier:   verifier,
		Normalizer: webhook.NewNormalizer(),
		Limiter:    limiter,
		Hub:        hub,
		Static:     web.FS(),
		Logger:     logger,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
