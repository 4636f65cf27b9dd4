package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vanyalambert/New-Harry-Potter/internal/config"
	"github.com/vanyalambert/New-Harry-Potter/internal/game"
	"github.com/vanyalambert/New-Harry-Potter/internal/handlers"
	"github.com/vanyalambert/New-Harry-Potter/internal/logger"
	"github.com/vanyalambert/New-Harry-Potter/internal/middleware"
	"github.com/vanyalambert/New-Harry-Potter/internal/services"
	"github.com/vanyalambert/New-Harry-Potter/internal/storage"
	"github.com/vanyalambert/New-Harry-Potter/pkg/cache"
	"github.com/vanyalambert/New-Harry-Potter/pkg/eval"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Mystery Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	// A missing API key does not stop the server: deterministic commands
	// keep working and dialogue degrades to the fallback reply.
	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set; dialogue generation disabled")
			llmService = services.NewDisabledLLMService("GEMINI_API_KEY not set")
		} else {
			llmService = services.NewGeminiService(cfg.GeminiAPIKey, cfg.ModelName, log)
			log.Info("Using Gemini LLM provider")
		}
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY not set; dialogue generation disabled")
			llmService = services.NewDisabledLLMService("ANTHROPIC_API_KEY not set")
		} else {
			llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
			log.Info("Using Anthropic LLM provider")
		}
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"gemini", "anthropic"})
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	w := world.Hogwarts()
	if cfg.WorldFile != "" {
		w, err = world.LoadFile(cfg.WorldFile)
		if err != nil {
			log.Error("Failed to load world file", "path", cfg.WorldFile, "error", err)
			os.Exit(1)
		}
		log.Info("World loaded from file", "path", cfg.WorldFile)
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	responseCache := cache.New()
	metrics := eval.NewMetrics()
	engine := game.NewEngine(w, llmService, responseCache, metrics, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(w, store, log)
	mux.Handle("/v1/session", sessionHandler)
	mux.Handle("/v1/session/", sessionHandler)

	actionHandler := handlers.NewActionHandler(engine, store, log)
	mux.Handle("/v1/action", actionHandler)

	evaluationHandler := handlers.NewEvaluationHandler(metrics, responseCache, log)
	mux.Handle("/v1/evaluation/", evaluationHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}
