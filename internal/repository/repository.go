package repository

import (
	"context"

	"fastnic/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the mutable columns of an existing product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns ErrProductNotFound when no row
	// matched.
	Delete(ctx context.Context, id string) error
}

// RecipeRepository defines the interface for recipe data access
// operations. Recipes own their ingredients: creation is transactional
// and deletion cascades.
type RecipeRepository interface {
	// GetAll retrieves all recipes with their ingredients.
	GetAll(ctx context.Context) ([]model.Recipe, error)

	// GetByID retrieves a recipe with its ingredients. Returns nil when
	// the recipe does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)

	// GetByName retrieves the single recipe with the given name. Returns
	// ErrRecipeNotFound when no row matches and ErrTooManyMatches when
	// more than one does.
	GetByName(ctx context.Context, name string) (*model.Recipe, error)

	// Create inserts a recipe and its ingredients in one transaction.
	Create(ctx context.Context, recipe *model.Recipe) error

	// Update replaces the mutable columns of an existing recipe.
	Update(ctx context.Context, recipe *model.Recipe) error

	// Delete removes a recipe and its ingredients. Returns
	// ErrRecipeNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
