package model

import (
	"time"

	"github.com/google/uuid"
)

// Recipe represents a stored recipe with its ingredients.
type Recipe struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Category    string       `json:"category" db:"category"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// Ingredient represents one ingredient of a recipe, bound to a grocery
// product. Quantity is the cart count added when the recipe is ordered.
type Ingredient struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RecipeID  uuid.UUID `json:"recipeId" db:"recipe_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RecipeRequest represents the request payload for creating a recipe.
type RecipeRequest struct {
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	Ingredients []IngredientRequest `json:"ingredients"`
}

// IngredientRequest represents a single ingredient in a recipe request.
type IngredientRequest struct {
	Name      string `json:"name"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// RecipeUpdateRequest represents a partial update of a recipe. Nil fields
// are left unchanged.
type RecipeUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}

// OrderRequest represents the request payload for placing an order: the
// names of the recipes whose ingredients go into the cart.
type OrderRequest struct {
	Recipes []string `json:"recipes"`
}
