// Package main is the entry point for the Expense Tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("Starting Expense Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database_driver", cfg.Database.Driver,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, falling back to in-process rate limiting", "error", err)
			redisClient = nil
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	injector := dependency.NewInjector(cfg, database.DB(), redisClient, nil)
	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server exited properly")
	return nil
}
