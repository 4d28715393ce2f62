package database

import (
	"context"
	"fmt"
	"time"

	"fastnic/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates a new PostgreSQL connection pool. Connection attempts
// are retried with a fixed delay until cfg.ConnectTimeout elapses, so the
// database may come up after the API does.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	deadline := time.Now().Add(time.Duration(cfg.ConnectTimeout) * time.Second)
	retryDelay := time.Duration(cfg.ConnectRetryDelay) * time.Second

	var lastErr error
	for time.Now().Before(deadline) {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			logger.Info().
				Err(err).
				Dur("retry_delay", retryDelay).
				Msg("could not connect to database, retrying")

			select {
			case <-time.After(retryDelay):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		logger.Info().Msg("database connection pool created successfully")
		return pool, nil
	}

	return nil, fmt.Errorf("could not connect to database within %ds: %w", cfg.ConnectTimeout, lastErr)
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			image_uri TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id),
			name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_ingredients_recipe_id ON ingredients(recipe_id);
		CREATE INDEX IF NOT EXISTS idx_ingredients_product_id ON ingredients(product_id);
		CREATE INDEX IF NOT EXISTS idx_recipes_name ON recipes(name);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")

	return nil
}
