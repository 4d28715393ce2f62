package repository

import (
	"context"
	"errors"
	"fmt"

	"fastnic/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	retry  RetryPolicy
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		retry:  DefaultRetryPolicy(),
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT id, name, category, image_uri, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	var products []model.Product
	err := r.retry.Do(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to query products: %w", err)
		}
		defer rows.Close()

		products = products[:0]
		for rows.Next() {
			var p model.Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.ImageURI, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan product: %w", err)
			}
			products = append(products, p)
		}

		return rows.Err()
	})
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, category, image_uri, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.retry.Do(ctx, func() error {
		return r.pool.QueryRow(ctx, query, id).
			Scan(&p.ID, &p.Name, &p.Category, &p.ImageURI, &p.CreatedAt, &p.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, category, image_uri, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	err := r.retry.Do(ctx, func() error {
		_, err := r.pool.Exec(ctx, query,
			product.ID,
			product.Name,
			product.Category,
			product.ImageURI,
			product.CreatedAt,
			product.UpdatedAt,
		)
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID).Msg("product created")

	return nil
}

// Update replaces the mutable columns of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, image_uri = $4, updated_at = $5
		WHERE id = $1
	`

	err := r.retry.Do(ctx, func() error {
		result, err := r.pool.Exec(ctx, query,
			product.ID,
			product.Name,
			product.Category,
			product.ImageURI,
			product.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID).Msg("product updated")

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	err := r.retry.Do(ctx, func() error {
		result, err := r.pool.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Str("product_id", id).Msg("product deleted")

	return nil
}
