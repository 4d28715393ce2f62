package service

import (
	"context"

	"fastnic/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create stores a new product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id string, req *model.ProductUpdateRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

// RecipeService defines operations for recipe management.
type RecipeService interface {
	// GetAll retrieves all recipes with their ingredients.
	GetAll(ctx context.Context) ([]model.Recipe, error)

	// GetByID retrieves a single recipe by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)

	// Create stores a new recipe with its ingredients.
	Create(ctx context.Context, req *model.RecipeRequest) (*model.Recipe, error)

	// Update applies a partial update to a recipe.
	Update(ctx context.Context, id uuid.UUID, req *model.RecipeUpdateRequest) (*model.Recipe, error)

	// Delete removes a recipe and its ingredients.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines the order placement operation: pushing every
// ingredient of the named recipes into the external shopping cart.
type OrderService interface {
	// PlaceOrder adds each ingredient of each named recipe to the cart
	// and returns the ingredients that were ordered.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) ([]model.Ingredient, error)
}
