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

	"github.com/kailas-cloud/searchdeck/internal/config"
	dbRedis "github.com/kailas-cloud/searchdeck/internal/db/redis"
	"github.com/kailas-cloud/searchdeck/internal/domain"
	logpkg "github.com/kailas-cloud/searchdeck/internal/logger"
	"github.com/kailas-cloud/searchdeck/internal/metrics"
	"github.com/kailas-cloud/searchdeck/internal/repository/embcache"
	invoicerepo "github.com/kailas-cloud/searchdeck/internal/repository/invoice"
	suggestrepo "github.com/kailas-cloud/searchdeck/internal/repository/suggest"
	chiTransport "github.com/kailas-cloud/searchdeck/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/searchdeck/internal/transport/openai"
	healthuc "github.com/kailas-cloud/searchdeck/internal/usecase/health"
	invoiceuc "github.com/kailas-cloud/searchdeck/internal/usecase/invoice"
	searchuc "github.com/kailas-cloud/searchdeck/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/searchdeck/internal/usecase/session"
	suggestuc "github.com/kailas-cloud/searchdeck/internal/usecase/suggest"
	"github.com/kailas-cloud/searchdeck/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchdeck API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register session and embedding metrics explicitly (no init())
	metrics.RegisterSessionMetrics()

	// Pass nil interface (not typed nil pointer!) when suggestions are off.
	// Go gotcha: a typed nil wrapped in domain.Embedder != nil.
	var embedder domain.Embedder
	var embedderHealth healthuc.EmbeddingChecker
	if cfg.Suggest.APIKey != "" {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Suggest.APIKey,
			BaseURL:    cfg.Suggest.BaseURL,
			Model:      cfg.Suggest.Model,
			Dimensions: cfg.Suggest.Dimensions,
			Logger:     logger,
		})
		embedder = embcache.New(base, store,
			time.Duration(cfg.Suggest.CacheTTLHr)*time.Hour,
			metrics.EmbeddingCacheTotal, logger)
		embedderHealth = base
		logger.Info("Query suggestions enabled",
			zap.String("model", cfg.Suggest.Model),
			zap.Int("dimensions", cfg.Suggest.Dimensions),
		)
	} else {
		logger.Info("Query suggestions disabled (no suggest.api_key)")
	}

	// Repositories
	invRepo := invoicerepo.New(store).
		WithKeyPrefix(cfg.Storage.KeyPrefix).
		WithMaxScan(cfg.Search.MaxScan)
	termRepo := suggestrepo.New(store).
		WithKeyPrefix(cfg.Storage.KeyPrefix).
		WithMaxTerms(cfg.Suggest.MaxTerms)

	// Use case services
	searchSvc := searchuc.New(invRepo).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	invoiceSvc := invoiceuc.New(invRepo)
	suggestSvc := suggestuc.New(termRepo, embedder, logger)
	healthSvc := healthuc.NewService(store, embedderHealth, logger)

	// Session manager with idle janitor
	sessions := sessionuc.NewManager(logger).
		WithTTL(time.Duration(cfg.Sessions.TTLMin) * time.Minute).
		WithSweepInterval(time.Duration(cfg.Sessions.SweepIntervalSec) * time.Second).
		WithWindow(time.Duration(cfg.Sessions.DebounceMs) * time.Millisecond)
	if cfg.Sessions.PageReset {
		sessions = sessions.WithPageReset()
	}
	sessions.Start()
	defer sessions.Stop()

	server := chiTransport.NewServer(sessions, searchSvc, invoiceSvc, suggestSvc, healthSvc, logger)

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

// jsonRecoverer converts a handler panic into the same JSON error envelope
// the transport uses, instead of chi's plain-text stacktrace.
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
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits one canonical log line per request, echoes
// X-Request-ID, and injects a request-scoped logger for the handlers.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.Inject(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// The query string is part of the event: for a search service
			// the interesting state lives in the URL parameters.
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.Int("bytes_out", ww.BytesWritten()),
				zap.String("remote", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}
