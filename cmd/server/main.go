package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	serenityroot "github.com/serenity-health/serenity"
	"github.com/serenity-health/serenity/internal/alert"
	"github.com/serenity-health/serenity/internal/assistant"
	"github.com/serenity-health/serenity/internal/catalog"
	"github.com/serenity-health/serenity/internal/config"
	"github.com/serenity-health/serenity/internal/emotion"
	"github.com/serenity-health/serenity/internal/handler"
	"github.com/serenity-health/serenity/internal/repository"
	"github.com/serenity-health/serenity/internal/retrieval"
	"github.com/serenity-health/serenity/internal/service"
)

const version = "1.0.0"

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration (.env is optional, real env wins)
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if level := logLevel(cfg.LogLevel); level != slog.LevelInfo {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})))
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(serenityroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(pool)

	// Load embedded content and build the retrieval index
	cat, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	index := retrieval.NewIndex(cat.Corpus)
	var web *retrieval.WebSearch
	if cfg.WebSearchEnabled {
		web = retrieval.NewWebSearch()
	}
	retriever := retrieval.NewRetriever(index, web)
	slog.Info("retrieval index built", "documents", index.Size(), "web_search", cfg.WebSearchEnabled)

	// Telegram ops alerts (no-op when not configured)
	alerts, err := alert.New(cfg)
	if err != nil {
		slog.Error("telegram alerts disabled", "error", err)
	}

	// Initialize services
	users := service.NewUserService(store, cfg.JWTSecret)
	chats := service.NewChatService(store)
	emotions := service.NewEmotionService(store)
	safety := service.NewSafetyService(store)
	wellness := service.NewWellnessService(store, cat)
	llm := service.NewLLMService(cfg)
	cache := service.NewResponseCache(config.ResponseCacheTTL, config.ResponseCacheMax)
	memory := assistant.NewMemory(llm)
	emotionAnalyzer := emotion.NewAnalyzer(cat.Emotions)
	orchestrator := assistant.NewOrchestrator(llm, memory, retriever, emotionAnalyzer, cache, alerts)

	// Background janitor: expire cached replies, idle sessions and stale
	// rate-limit counters
	go func() {
		ticker := time.NewTicker(config.JanitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				swept := cache.Sweep()
				expired := memory.CleanupExpired(config.SessionIdleTimeout)
				if _, err := store.CleanupStaleRateLimits(context.Background()); err != nil {
					slog.Error("cleanup rate limits", "error", err)
				}
				if swept > 0 || expired > 0 {
					slog.Debug("janitor pass", "cache_swept", swept, "sessions_expired", expired)
				}
			}
		}
	}()

	// Initialize HTTP handler
	h := handler.New(handler.Deps{
		Cfg:             cfg,
		Users:           users,
		Chats:           chats,
		Emotions:        emotions,
		Safety:          safety,
		Wellness:        wellness,
		Orchestrator:    orchestrator,
		EmotionAnalyzer: emotionAnalyzer,
		Catalog:         cat,
		Retriever:       retriever,
		Cache:           cache,
		Store:           store,
		Version:         version,
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	h.Routes(r)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		slog.Info("server started", "addr", cfg.Addr(), "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()
	alerts.Startup(cfg.Addr())

	// Graceful shutdown
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	alerts.Shutdown()
	slog.Info("server stopped gracefully")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
