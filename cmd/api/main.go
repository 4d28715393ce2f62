package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fastnic/internal/config"
	"fastnic/internal/database"
	"fastnic/internal/dealicious"
	"fastnic/internal/handler"
	"fastnic/internal/picnic"
	"fastnic/internal/repository"
	"fastnic/internal/router"
	"fastnic/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting fastnic API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool. NewPool retries until the
	// database accepts connections or the configured budget runs out.
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	recipeRepo := repository.NewRecipeRepository(pool, logger)

	// Initialize the grocery-cart service client. Authentication happens
	// lazily on the first request.
	cartClient := picnic.NewClient(cfg.Picnic, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	recipeService := service.NewRecipeService(recipeRepo, productRepo, logger)
	orderService := service.NewOrderService(recipeRepo, cartClient, logger)
	dealiciousService := dealicious.NewService(cartClient, logger)

	// Initialize HTTP handlers
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	dealiciousHandler := handler.NewDealiciousHandler(dealiciousService, logger)
	healthHandler := handler.NewHealthHandler(cartClient, logger)

	// Initialize router
	mux := router.New(
		recipeHandler,
		productHandler,
		orderHandler,
		dealiciousHandler,
		healthHandler,
		cfg.Auth.APIKey,
		logger,
	)

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

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
