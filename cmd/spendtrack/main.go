package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendtrack/internal/amqp"
	"spendtrack/internal/config"
	apphttp "spendtrack/internal/http"
	applog "spendtrack/internal/log"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

func main() {
	// .env is for local development; in production the environment is real.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(cfg.LogLevel, "api")
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	if cfg.SeedAdminPassword != "" {
		if err := storage.Seed(context.Background(), repo, cfg.SeedAdminUser, cfg.SeedAdminPassword); err != nil {
			logger.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("SEED_ADMIN_PASSWORD not set, skipping seed")
	}

	categoryCache, err := storage.NewCategoryCache(repo)
	if err != nil {
		logger.Error("failed to create category cache", "error", err)
		os.Exit(1)
	}
	defer categoryCache.Close()

	var events services.EventPublisher
	if cfg.EventsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled, expense events will not be published")
	}

	categoryService := services.NewCategoryService(categoryCache)
	expenseService := services.NewExpenseService(repo, categoryCache, events)

	srv := apphttp.NewServer(
		":"+cfg.Port,
		categoryService,
		expenseService,
		repo,
		cfg.JWTSecret,
		cfg.TokenTTL,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("starting server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped")
}
