package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentstudio/estimator/internal/api"
	"github.com/agentstudio/estimator/internal/auth"
	"github.com/agentstudio/estimator/internal/config"
	"github.com/agentstudio/estimator/internal/engine"
	"github.com/agentstudio/estimator/internal/estimatestore"
	"github.com/agentstudio/estimator/internal/tracing"
	"github.com/agentstudio/estimator/internal/validator"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx := context.Background()

	tracer, err := tracing.Init(ctx, &tracing.Config{
		ServiceName:    "agentstudio-estimator",
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   cfg.TracingEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer tracer.Shutdown(context.Background())

	store := newStore(cfg, logger)
	defer store.Close()

	eng := engine.New(&engine.Params{
		TokenUnitPrice:  cfg.TokenUnitPrice,
		CreditUnitPrice: cfg.CreditUnitPrice,
		GraphEfficiency: cfg.GraphEfficiency,
	})

	v, err := validator.New()
	if err != nil {
		// The engine tolerates anything, so run open rather than refuse
		// to start.
		logger.Error("schema validation disabled", "error", err)
		v = nil
	}

	var authMw *auth.Middleware
	if cfg.OIDCEnabled {
		provider, err := auth.NewProvider(ctx, &auth.Config{
			Issuer:       cfg.OIDCIssuer,
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
		})
		if err != nil {
			logger.Error("oidc setup failed, auth disabled", "error", err)
		} else {
			authMw = auth.NewMiddleware(provider, &auth.MiddlewareConfig{Enabled: true})
			logger.Info("oidc authentication enabled", "issuer", cfg.OIDCIssuer)
		}
	}

	rateLimiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	handlers := api.NewHandlers(store, eng, v, cfg, logger)
	server := api.NewServer(handlers, &api.ServerOptions{
		RateLimiter:    rateLimiter,
		Auth:           authMw,
		TracingEnabled: cfg.TracingEnabled,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("estimator listening", "port", cfg.Port, "store", cfg.StoreType)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}

// newStore selects the estimate store backend, falling back to memory
// when Redis is unreachable.
func newStore(cfg *config.Config, logger *slog.Logger) estimatestore.Store {
	if cfg.StoreType == "redis" {
		store, err := estimatestore.NewRedisStore(&estimatestore.RedisConfig{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.StoreTTL,
		})
		if err != nil {
			logger.Warn("redis unavailable, using in-memory store", "error", err)
		} else {
			logger.Info("using redis estimate store", "url", cfg.RedisURL)
			return store
		}
	}
	return estimatestore.NewMemoryStore(&estimatestore.Config{
		MaxEntries: cfg.StoreMaxEntries,
		TTL:        cfg.StoreTTL,
	})
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
