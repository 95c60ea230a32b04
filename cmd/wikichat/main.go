package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/chatwith/wikichat/internal/chat"
	"github.com/chatwith/wikichat/internal/config"
	"github.com/chatwith/wikichat/internal/db"
	dbRedis "github.com/chatwith/wikichat/internal/db/redis"
	logpkg "github.com/chatwith/wikichat/internal/logger"
	"github.com/chatwith/wikichat/internal/metrics"
	documentrepo "github.com/chatwith/wikichat/internal/repository/document"
	"github.com/chatwith/wikichat/internal/repository/embcache"
	searchrepo "github.com/chatwith/wikichat/internal/repository/search"
	chiTransport "github.com/chatwith/wikichat/internal/transport/chi"
	openaiClient "github.com/chatwith/wikichat/internal/transport/openai"
	collectionuc "github.com/chatwith/wikichat/internal/usecase/collection"
	documentuc "github.com/chatwith/wikichat/internal/usecase/document"
	healthuc "github.com/chatwith/wikichat/internal/usecase/health"
	ingestuc "github.com/chatwith/wikichat/internal/usecase/ingest"
	searchuc "github.com/chatwith/wikichat/internal/usecase/search"
	"github.com/chatwith/wikichat/internal/version"
	"github.com/chatwith/wikichat/internal/wiki"
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

	logger.Info("Starting wikichat API server",
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

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	indexName := cfg.Collection.Name + ":idx"
	if err := ensureIndex(ctx, store, indexName, cfg); err != nil {
		logger.Fatal("Failed to create vector index", zap.Error(err))
	}
	logger.Info("Vector index ready", zap.String("index", indexName))

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Build embedder chain, assembled at the composition root
	baseEmbedder := openaiClient.NewEmbedder(&openaiClient.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	embedder := embcache.New(baseEmbedder, store, metrics.EmbeddingCacheTotal, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	chatClient := openaiClient.NewChatClient(&openaiClient.ChatConfig{
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Provider: "openai",
		Retry: openaiClient.RetryConfig{
			MaxRetries:  cfg.LLM.MaxRetries,
			BaseDelay:   time.Duration(cfg.LLM.BaseDelayMS) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.LLM.MaxDelayMS) * time.Millisecond,
			JitterRatio: 0.25,
		},
		Logger: logger,
	})

	birthDate, err := time.Parse("2006-01-02", cfg.Subject.BirthDate)
	if err != nil {
		logger.Fatal("Invalid subject birth date", zap.Error(err))
	}
	chatSvc := chat.New(chatClient, chat.Subject{
		Name:        cfg.Subject.Name,
		Description: cfg.Subject.Description,
		BirthDate:   birthDate,
	}, chat.Options{
		RelevanceMaxTokens:   cfg.LLM.RelevanceMaxTokens,
		RelevanceTemperature: cfg.LLM.RelevanceTemperature,
		SummaryMaxTokens:     cfg.LLM.SummaryMaxTokens,
		SummaryTemperature:   cfg.LLM.SummaryTemperature,
	}, logger)

	// Repositories and use case services
	docRepo := documentrepo.New(store)
	searchRepo := searchrepo.New(store, indexName)

	docSvc := documentuc.New(docRepo, embedder)
	searchSvc := searchuc.New(searchRepo, embedder, chatSvc, cfg.Subject.Name)
	collSvc := collectionuc.New(docRepo, cfg.Collection.Name, indexName)
	healthSvc := healthuc.New(store, baseEmbedder)

	// Startup ingestion runs in the background so a slow or unreachable
	// Wikipedia never blocks serving traffic.
	if cfg.Ingest.Enabled {
		ingestSvc := ingestuc.New(wiki.NewScraper(), docRepo, embedder, ingestuc.Config{
			WikipediaURL: cfg.Ingest.WikipediaURL,
			DocumentID:   cfg.Ingest.DocumentID,
			ChunkSize:    cfg.Ingest.ChunkSize,
		}, logger)
		go func() {
			stored, err := ingestSvc.Run(ctx)
			if err != nil {
				logger.Error("Startup ingestion failed", zap.Error(err))
				return
			}
			logger.Info("Startup ingestion finished", zap.Int("documents_stored", stored))
		}()
	}

	server := chiTransport.NewServer(docSvc, searchSvc, collSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// ensureIndex creates the vector index if it does not exist yet.
func ensureIndex(ctx context.Context, store db.Store, indexName string, cfg config.Config) error {
	def := documentrepo.IndexDefinition(indexName, cfg.Embedding.Dimensions, documentrepo.HNSWConfig{
		M:           cfg.Collection.HNSWM,
		EFConstruct: cfg.Collection.HNSWEFConstruct,
	})
	if err := store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return err
	}
	return nil
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

			// Canonical log line, one per request
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
