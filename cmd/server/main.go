// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/retailx/retailx-backend/internal/cache"
	"github.com/retailx/retailx-backend/internal/config"
	"github.com/retailx/retailx-backend/internal/database"
	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/middleware"
	"github.com/retailx/retailx-backend/internal/router"
	"github.com/retailx/retailx-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize database
	store, err := database.Initialize(ctx, cfg.Mongo)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close(context.Background())

	revocations, closeRevocations := newRevocationStore(ctx, cfg)
	defer closeRevocations()

	storage, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage")
	}

	var assistant services.Assistant
	if cfg.Gemini.APIKey != "" {
		gemini, err := services.NewGeminiAssistant(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize Gemini client")
		}
		assistant = gemini
	} else {
		logrus.Warn("GEMINI_API_KEY not set; chat answers from inventory only")
	}

	deps := router.Dependencies{
		Config:      cfg,
		Store:       store,
		Revocations: revocations,
		Storage:     storage,
		Assistant:   assistant,
	}
	if cfg.RateLimit.Enabled {
		deps.GeneralLimiter = middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.GeneralRPS), cfg.RateLimit.GeneralBurst)
		deps.AuthLimiter = middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.AuthRPS), cfg.RateLimit.AuthBurst)
		go deps.GeneralLimiter.Run(ctx)
		go deps.AuthLimiter.Run(ctx)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(deps)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	logrus.SetOutput(os.Stdout)
	if !cfg.IsDevelopment() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logrus.WithField("level", cfg.Log.Level).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// newRevocationStore uses Redis when REDIS_HOST is set. Revocations held
// in memory do not survive a restart or span replicas.
func newRevocationStore(ctx context.Context, cfg *config.Config) (cache.RevocationStore, func()) {
	if cfg.Redis.Host == "" {
		logrus.Warn("REDIS_HOST not set; token revocations are kept in memory")
		return cache.NewMemoryRevocationStore(), func() {}
	}

	store, err := cache.NewRedisRevocationStore(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to Redis")
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing Redis client")
		}
	}
}
