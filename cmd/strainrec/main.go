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

	"github.com/verdant-cloud/strainrec/internal/config"
	dbRedis "github.com/verdant-cloud/strainrec/internal/db/redis"
	logpkg "github.com/verdant-cloud/strainrec/internal/logger"
	"github.com/verdant-cloud/strainrec/internal/metrics"
	"github.com/verdant-cloud/strainrec/internal/repository/artifact"
	engagementrepo "github.com/verdant-cloud/strainrec/internal/repository/engagement"
	profilerepo "github.com/verdant-cloud/strainrec/internal/repository/profile"
	chiTransport "github.com/verdant-cloud/strainrec/internal/transport/chi"
	openaiChat "github.com/verdant-cloud/strainrec/internal/transport/openai"
	accountuc "github.com/verdant-cloud/strainrec/internal/usecase/account"
	chatuc "github.com/verdant-cloud/strainrec/internal/usecase/chat"
	favoritesuc "github.com/verdant-cloud/strainrec/internal/usecase/favorites"
	feedbackuc "github.com/verdant-cloud/strainrec/internal/usecase/feedback"
	healthuc "github.com/verdant-cloud/strainrec/internal/usecase/health"
	recommenduc "github.com/verdant-cloud/strainrec/internal/usecase/recommend"
	reviewuc "github.com/verdant-cloud/strainrec/internal/usecase/review"
	strainsuc "github.com/verdant-cloud/strainrec/internal/usecase/strains"
	surveyuc "github.com/verdant-cloud/strainrec/internal/usecase/survey"
	"github.com/verdant-cloud/strainrec/internal/version"
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

	logger.Info("Starting strainrec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("catalog", cfg.Catalog.DataPath),
		zap.String("vectors", cfg.Catalog.VectorsPath),
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

	// Register recommendation metrics explicitly (no init())
	metrics.RegisterServiceMetrics()

	// Catalog and embedding artifacts. The first load must succeed before
	// the server starts taking traffic.
	artifacts := artifact.NewProvider(cfg.Catalog.DataPath, cfg.Catalog.VectorsPath)
	if err := artifacts.Load(); err != nil {
		logger.Fatal("Failed to load catalog artifacts", zap.Error(err))
	}
	logger.Info("Catalog artifacts loaded")

	watchCtx, stopWatch := context.WithCancel(logpkg.ContextWithLogger(ctx, logger))
	defer stopWatch()
	if cfg.Catalog.Watch {
		go func() {
			if err := artifacts.Watch(watchCtx); err != nil && watchCtx.Err() == nil {
				logger.Error("Artifact watcher stopped", zap.Error(err))
			}
		}()
	}

	// Create repositories
	profiles := profilerepo.New(store)
	engagement := engagementrepo.New(store)

	// Optional chat provider. Pass a nil interface (not a typed nil pointer!)
	// when chat is not configured, so the service's nil check works.
	var completer chatuc.Completer
	if cfg.Chat.APIKey != "" {
		completer = openaiChat.NewCompleter(&openaiChat.Config{
			APIKey:      cfg.Chat.APIKey,
			BaseURL:     cfg.Chat.BaseURL,
			Model:       cfg.Chat.Model,
			MaxTokens:   cfg.Chat.MaxTokens,
			Temperature: cfg.Chat.Temp,
			Logger:      logger,
		})
		logger.Info("Chat provider configured", zap.String("model", cfg.Chat.Model))
	}

	// Create use case services
	threshold := cfg.Recommend.FuzzyThreshold
	accountSvc := accountuc.New(profiles)
	recommendSvc := recommenduc.New(profiles, artifacts, threshold, cfg.Recommend.TopK)
	surveySvc := surveyuc.New(profiles, recommendSvc)
	reviewSvc := reviewuc.New(profiles, artifacts, engagement, threshold)
	feedbackSvc := feedbackuc.New(profiles, artifacts, engagement, threshold)
	favoritesSvc := favoritesuc.New(profiles, artifacts, threshold)
	strainsSvc := strainsuc.New(artifacts, engagement)
	chatSvc := chatuc.New(completer, artifacts, threshold)
	healthSvc := healthuc.New(store, artifacts)

	// Create chi server
	server := chiTransport.NewServer(
		accountSvc, surveySvc, recommendSvc, reviewSvc, feedbackSvc,
		favoritesSvc, strainsSvc, chatSvc, healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

			// Set X-Request-ID in response header
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
