package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-ledger/internal/config"
	"shop-ledger/internal/database"
	"shop-ledger/internal/handler"
	"shop-ledger/internal/imagestore"
	"shop-ledger/internal/repository"
	"shop-ledger/internal/router"
	"shop-ledger/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shop-ledger API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize image uploader with placeholder-only fallback
	var uploader imagestore.Uploader
	if cfg.ImageStore.Enabled {
		uploader, err = imagestore.NewS3Uploader(ctx, cfg.ImageStore, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise image store, product images will use the placeholder URL")
			uploader = imagestore.NewDisabledUploader()
		}
	} else {
		uploader = imagestore.NewDisabledUploader()
		logger.Info().Msg("image store disabled, product images will use the placeholder URL")
	}

	// Initialize repository, service and handlers
	customerRepo := repository.NewCustomerRepository(pool, logger)
	customerService := service.NewCustomerService(customerRepo, uploader, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)

	// Initialize router
	mux := router.New(customerHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
