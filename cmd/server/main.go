package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/a2a"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/agent"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/cache"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/catalog"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/config"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/logging"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/profiler"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/strategy"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if os.Getenv("GEMINI_API_KEY") == "" {
		logger.Warn("GEMINI_API_KEY is not set; mix and evaluate calls will fail until it is")
	}

	// Initialize Gemini client
	geminiClient := profiler.NewGeminiClient(cfg.GeminiModel, logger)
	defer geminiClient.Close()

	var generator profiler.Generator = geminiClient
	if openaiClient := profiler.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger); openaiClient != nil {
		logger.Info("OpenAI fallback enabled", zap.String("model", cfg.OpenAIModel))
		generator = profiler.NewFallbackGenerator(geminiClient, openaiClient, logger)
	}

	mixer := profiler.NewMixer(generator, logger)
	if cfg.MixCacheEnabled() {
		mixCache, err := cache.NewMixCache(cache.RedisConfig{
			Addr:     cfg.MixCacheRedisAddr,
			Password: cfg.MixCachePassword,
			DB:       cfg.MixCacheDB,
			TTL:      cfg.MixCacheTTL,
		}, logger)
		if err != nil {
			logger.Warn("Mix cache disabled", zap.Error(err))
		} else {
			defer func() { _ = mixCache.Close() }()
			mixer.WithCache(mixCache)
		}
	}

	cat := catalog.Default()
	evaluator := profiler.NewEvaluator(generator, cat.Guidelines(), logger)
	service := strategy.NewService(cat, mixer, evaluator, strategy.Options{
		CallTimeout: cfg.GenerationTimeout,
		SessionTTL:  cfg.SessionTTL,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go service.Run(ctx)

	agent.BaseURL = cfg.BaseURL
	a2aHandler := a2a.NewA2AHandler(service, logger)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), a2a.RequestLoggingMiddleware(logger))

	// Endpoints
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.GET("/catalog", a2aHandler.ServeCatalog)
	router.GET("/sessions/:id/card", a2aHandler.ServeCard)

	router.POST("/a2a/strategy", a2aHandler.HandleStrategy)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Fondue Chalet Strategy Agent starting", zap.String("port", cfg.Port))
	logger.Info("Agent card available", zap.String("url", cfg.BaseURL+"/.well-known/agent.json"))
	logger.Info("A2A endpoint available", zap.String("url", cfg.BaseURL+"/a2a/strategy"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", zap.Error(err))
		}
		return
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GenerationTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
