package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"caselaw/internal/courts"
	"caselaw/internal/documents"
	documentshandler "caselaw/internal/documents/handler"
	documentsmetrics "caselaw/internal/documents/metrics"
	httpapi "caselaw/internal/http"
	"caselaw/internal/marklogic"
	"caselaw/internal/platform/config"
	"caselaw/internal/platform/httpserver"
	"caselaw/internal/platform/logger"
	"caselaw/internal/platform/metrics"
	"caselaw/internal/platform/redis"
	"caselaw/internal/search"
	searchhandler "caselaw/internal/search/handler"
	searchmetrics "caselaw/internal/search/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var store marklogic.Client = marklogic.NewHTTPClient(cfg.MarkLogic, log)

	var health httpapi.HealthChecker
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = marklogic.NewCachingClient(store, redisClient.Client, cfg.Redis.CacheTTL, log)
		health = redisClient
		log.Info("document cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	registry := courts.Default()
	searchMetrics := searchmetrics.New()
	builder := search.NewBuilder(store, log,
		search.WithCourts(registry),
		search.WithConcurrency(cfg.Search.BuildConcurrency),
		search.WithMetrics(searchMetrics),
	)
	searchService := search.NewService(store, builder, log, searchMetrics)

	docMetrics := documentsmetrics.New()
	assets := documents.NewAssetClient(cfg.Assets)
	resolver, err := documents.NewResolver(store, documents.NewHandlers(store, assets, assets, log, docMetrics), log, docMetrics)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Logger:    log,
		Metrics:   metrics.New(),
		Search:    searchhandler.New(searchService, registry, log),
		Documents: documentshandler.New(resolver, log),
		Health:    health,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting caselaw", "addr", cfg.Server.Addr, "marklogic", cfg.MarkLogic.Host)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
