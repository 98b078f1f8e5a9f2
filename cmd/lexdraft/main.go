package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lexdraft/lexdraft/internal/api"
	"github.com/lexdraft/lexdraft/internal/config"
	"github.com/lexdraft/lexdraft/internal/llm"
	"github.com/lexdraft/lexdraft/internal/logger"
	"github.com/lexdraft/lexdraft/internal/service"
	"github.com/lexdraft/lexdraft/internal/store"
	"github.com/lexdraft/lexdraft/internal/tools"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zlog := logger.New(cfg.Log.Path, cfg.Log.Production)
	defer zlog.Sync()

	// Session-scoped state lives in memory only
	sessions := store.New(tools.SystemPrompt)

	// Upstream model client and tool dispatcher
	client := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey)
	dispatcher := tools.NewDispatcher(sessions, zlog)

	chatService := service.NewChatService(cfg, sessions, client, dispatcher, zlog)

	// Setup router
	router := api.SetupRouter(chatService, sessions, api.RouterConfig{
		AllowOrigins:  cfg.Server.AllowOrigins,
		LLMConfigured: cfg.LLMConfigured(),
	})

	// Create HTTP server. WriteTimeout stays disabled so long-running SSE
	// responses are not cut off.
	srv := &http.Server{
		Addr:        cfg.Address(),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("Starting LexDraft server",
			zap.String("address", cfg.Address()),
			zap.String("model", cfg.LLM.Model),
			zap.Bool("llm_configured", cfg.LLMConfigured()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}
