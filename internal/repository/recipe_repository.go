package repository

import (
	"context"
	"errors"
	"fmt"

	"fastnic/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// recipeRepository implements the RecipeRepository interface using PostgreSQL.
type recipeRepository struct {
	pool   *pgxpool.Pool
	retry  RetryPolicy
	logger zerolog.Logger
}

// NewRecipeRepository creates a new PostgreSQL-backed recipe repository.
func NewRecipeRepository(pool *pgxpool.Pool, logger zerolog.Logger) RecipeRepository {
	return &recipeRepository{
		pool:   pool,
		retry:  DefaultRetryPolicy(),
		logger: logger.With().Str("repository", "recipe").Logger(),
	}
}

const recipeColumns = `id, name, category, created_at, updated_at`
const ingredientColumns = `id, recipe_id, product_id, name, quantity, created_at, updated_at`

// GetAll retrieves all recipes with their ingredients.
func (r *recipeRepository) GetAll(ctx context.Context) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY name`

	var recipes []model.Recipe
	err := r.retry.Do(ctx, func() error {
		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query recipes: %w", err)
		}
		defer rows.Close()

		recipes = recipes[:0]
		for rows.Next() {
			var recipe model.Recipe
			if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Category, &recipe.CreatedAt, &recipe.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan recipe: %w", err)
			}
			recipes = append(recipes, recipe)
		}

		return rows.Err()
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recipes")
		return nil, err
	}

	if err := r.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetByID retrieves a recipe with its ingredients.
func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

	var recipe model.Recipe
	err := r.retry.Do(ctx, func() error {
		return r.pool.QueryRow(ctx, query, id).
			Scan(&recipe.ID, &recipe.Name, &recipe.Category, &recipe.CreatedAt, &recipe.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("recipe_id", id.String()).Msg("recipe not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("recipe_id", id.String()).Msg("failed to query recipe")
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	recipes := []model.Recipe{recipe}
	if err := r.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}

	return &recipes[0], nil
}

// GetByName retrieves the single recipe with the given name, checking
// cardinality: no match is ErrRecipeNotFound, more than one is
// ErrTooManyMatches.
func (r *recipeRepository) GetByName(ctx context.Context, name string) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE name = $1`

	var recipes []model.Recipe
	err := r.retry.Do(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, name)
		if err != nil {
			return fmt.Errorf("failed to query recipe by name: %w", err)
		}
		defer rows.Close()

		recipes = recipes[:0]
		for rows.Next() {
			var recipe model.Recipe
			if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Category, &recipe.CreatedAt, &recipe.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan recipe: %w", err)
			}
			recipes = append(recipes, recipe)
		}

		return rows.Err()
	})
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query recipe by name")
		return nil, err
	}

	switch len(recipes) {
	case 0:
		r.logger.Debug().Str("name", name).Msg("recipe not found")
		return nil, model.ErrRecipeNotFound
	case 1:
	default:
		r.logger.Warn().Str("name", name).Int("count", len(recipes)).Msg("recipe name is not unique")
		return nil, model.ErrTooManyMatches
	}

	if err := r.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}

	return &recipes[0], nil
}

// Create inserts a recipe and its ingredients in one transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	err := r.retry.Do(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		recipeQuery := `
			INSERT INTO recipes (id, name, category, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, recipeQuery,
			recipe.ID, recipe.Name, recipe.Category, recipe.CreatedAt, recipe.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}

		if len(recipe.Ingredients) > 0 {
			ingredientQuery := `
				INSERT INTO ingredients (id, recipe_id, product_id, name, quantity, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`
			batch := &pgx.Batch{}
			for _, ing := range recipe.Ingredients {
				batch.Queue(ingredientQuery,
					ing.ID, ing.RecipeID, ing.ProductID, ing.Name, ing.Quantity, ing.CreatedAt, ing.UpdatedAt,
				)
			}

			results := tx.SendBatch(ctx, batch)
			for range recipe.Ingredients {
				if _, err := results.Exec(); err != nil {
					results.Close()
					return fmt.Errorf("failed to insert ingredient: %w", err)
				}
			}
			if err := results.Close(); err != nil {
				return fmt.Errorf("failed to close ingredient batch: %w", err)
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		r.logger.Error().Err(err).Str("recipe_id", recipe.ID.String()).Msg("failed to create recipe")
		return err
	}

	r.logger.Debug().
		Str("recipe_id", recipe.ID.String()).
		Int("ingredients", len(recipe.Ingredients)).
		Msg("recipe created")

	return nil
}

// Update replaces the mutable columns of an existing recipe.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $2, category = $3, updated_at = $4
		WHERE id = $1
	`

	err := r.retry.Do(ctx, func() error {
		result, err := r.pool.Exec(ctx, query, recipe.ID, recipe.Name, recipe.Category, recipe.UpdatedAt)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrRecipeNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return err
		}
		r.logger.Error().Err(err).Str("recipe_id", recipe.ID.String()).Msg("failed to update recipe")
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	r.logger.Debug().Str("recipe_id", recipe.ID.String()).Msg("recipe updated")

	return nil
}

// Delete removes a recipe; its ingredients go with it via the cascading
// foreign key.
func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM recipes WHERE id = $1`

	err := r.retry.Do(ctx, func() error {
		result, err := r.pool.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrRecipeNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return err
		}
		r.logger.Error().Err(err).Str("recipe_id", id.String()).Msg("failed to delete recipe")
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	r.logger.Debug().Str("recipe_id", id.String()).Msg("recipe deleted")

	return nil
}

// attachIngredients loads the ingredients of the given recipes in one
// query and attaches them in place.
func (r *recipeRepository) attachIngredients(ctx context.Context, recipes []model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(recipes))
	for i, recipe := range recipes {
		ids[i] = recipe.ID
	}

	query := `
		SELECT ` + ingredientColumns + `
		FROM ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY name
	`

	byRecipe := make(map[uuid.UUID][]model.Ingredient)
	err := r.retry.Do(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, ids)
		if err != nil {
			return fmt.Errorf("failed to query ingredients: %w", err)
		}
		defer rows.Close()

		clear(byRecipe)
		for rows.Next() {
			var ing model.Ingredient
			if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.ProductID, &ing.Name, &ing.Quantity, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan ingredient: %w", err)
			}
			byRecipe[ing.RecipeID] = append(byRecipe[ing.RecipeID], ing)
		}

		return rows.Err()
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query ingredients")
		return err
	}

	for i := range recipes {
		ingredients := byRecipe[recipes[i].ID]
		if ingredients == nil {
			ingredients = []model.Ingredient{}
		}
		recipes[i].Ingredients = ingredients
	}

	return nil
}
