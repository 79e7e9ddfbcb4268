package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/caselens/internal/config"
	"github.com/kailas-cloud/caselens/internal/db"
	dbRedis "github.com/kailas-cloud/caselens/internal/db/redis"
	"github.com/kailas-cloud/caselens/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/caselens/internal/logger"
	"github.com/kailas-cloud/caselens/internal/metrics"
	"github.com/kailas-cloud/caselens/internal/repository/baseline"
	"github.com/kailas-cloud/caselens/internal/repository/searchcache"
	chiTransport "github.com/kailas-cloud/caselens/internal/transport/chi"
	"github.com/kailas-cloud/caselens/internal/transport/searchapi"
	healthuc "github.com/kailas-cloud/caselens/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/caselens/internal/usecase/session"
	"github.com/kailas-cloud/caselens/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting caselens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("search_base_url", cfg.Search.BaseURL),
	)

	ctx := context.Background()

	// Cache store is optional: no addrs means no caching.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	} else {
		logger.Info("Search cache disabled, no database addrs configured")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Load the baseline dataset. A missing dataset is not fatal: the
	// catalog starts empty and search still works.
	records := loadBaseline(ctx, cfg.Catalog, logger)
	metrics.BaselineRecords.Set(float64(len(records)))

	// Build searcher chain — composition root
	client := searchapi.NewClient(&searchapi.Config{
		BaseURL: cfg.Search.BaseURL,
		APIKey:  cfg.Search.APIKey,
		Timeout: time.Duration(cfg.Search.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	var searcher sessionuc.Searcher = client
	if store != nil {
		searcher = searchcache.New(
			client, store,
			time.Duration(cfg.Search.CacheTTLSec)*time.Second,
			metrics.SearchCacheTotal, logger,
		)
	}

	session := sessionuc.New(records, searcher, logger).
		WithPageSize(cfg.Catalog.PageSize).
		WithSearchLimit(cfg.Search.Limit)

	// Pass nil interface (not typed nil pointer!) if the store is not
	// configured.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger, client)

	server := chiTransport.NewServer(session, healthSvc, chiTransport.Facets{
		PolicyAreas: cfg.Catalog.PolicyAreas,
		YearFrom:    cfg.Catalog.YearFrom,
		YearTo:      cfg.Catalog.YearTo,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// loadBaseline reads the curated dataset from whichever source is configured.
func loadBaseline(ctx context.Context, cfg config.CatalogConfig, logger *zap.Logger) []catalog.Record {
	var loader *baseline.Loader
	switch {
	case cfg.BaselinePath != "":
		loader = baseline.NewFile(cfg.BaselinePath)
	case cfg.BaselineURL != "":
		loader = baseline.NewHTTP(cfg.BaselineURL)
	default:
		logger.Warn("No baseline source configured, starting with an empty catalog")
		return nil
	}

	records, err := loader.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load baseline dataset, starting with an empty catalog",
			zap.Error(err),
		)
		return nil
	}

	logger.Info("Baseline dataset loaded", zap.Int("records", len(records)))
	return records
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
