package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/chatbot"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/chatbot/api"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/config"
	redisdb "github.com/koushals-sys/Sprypt-chat-bot/internal/database/redis"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// .env is a convenience for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("SpryptChatbot")
	appLogger.Info("Starting Sprypt FAQ chatbot API...")

	service := chatbot.NewFromConfig(cfg, appLogger)

	// Build or load the index before accepting traffic. A failed build
	// leaves the service observably not ready: the process still serves
	// health checks so the operator can see the degraded state.
	if err := service.Init(context.Background()); err != nil {
		appLogger.WithError(err).Error("Chatbot initialization failed, serving in degraded state")
	}

	var cache *api.AnswerCache
	if cfg.Databases.Redis.Address != "" {
		client, err := redisdb.NewClient(context.Background(), &cfg.Databases.Redis)
		if err != nil {
			appLogger.WithError(err).Warn("Answer cache disabled: redis is unreachable")
		} else {
			cache = api.NewAnswerCache(client, time.Duration(cfg.Databases.Redis.TTLSeconds)*time.Second)
			appLogger.Info("Answer cache enabled")
		}
	}

	handler := api.NewHandler(service, cache, cfg.OpenAI.APIKey != "", appLogger)
	router := api.SetupRouter(handler)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server shutdown was not clean")
	}
	appLogger.Info("Server stopped")
}

// loadConfig reads the config file when it exists and falls back to
// defaults plus environment variables when it does not, so the binary runs
// with nothing but OPENAI_API_KEY set.
func loadConfig(path string) (*config.AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.FromEnv(), nil
	}
	return config.LoadConfig(path)
}
