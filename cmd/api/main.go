// Package main is the entry point for the Acquisitions Finance API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/acquisitions-finance/backend/config"
	"github.com/acquisitions-finance/backend/internal/infra/db"
	"github.com/acquisitions-finance/backend/internal/infra/dependency"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Acquisitions Finance API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(model.All()...); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")
	}

	// Redis is optional; without it every lookup goes to the database.
	var cacheHealthChecker func() bool
	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, running without cache", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		cacheHealthChecker = db.RedisHealthChecker(redisClient)
		defer func(client *redis.Client) {
			if err := client.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}(redisClient)
	}

	injector := dependency.NewInjector(cfg, database.DB(), redisClient, database.HealthCheck, cacheHealthChecker)
	engine := injector.Router.Setup(cfg.Server.Environment)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go injector.BatchRateLimiter.Run(ctx, cfg.Server.BatchRateWindow)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
