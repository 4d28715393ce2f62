package service

import (
	"context"
	"fmt"
	"time"

	"fastnic/internal/model"
	"fastnic/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// recipeService implements RecipeService.
type recipeService struct {
	recipeRepo  repository.RecipeRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) RecipeService {
	return &recipeService{
		recipeRepo:  recipeRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "recipe").Logger(),
	}
}

// GetAll retrieves all recipes with their ingredients.
func (s *recipeService) GetAll(ctx context.Context) ([]model.Recipe, error) {
	s.logger.Debug().Msg("getting all recipes")

	recipes, err := s.recipeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all recipes")
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	return recipes, nil
}

// GetByID retrieves a single recipe by ID.
func (s *recipeService) GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id.String()).Msg("failed to get recipe")
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe == nil {
		return nil, model.ErrRecipeNotFound
	}

	return recipe, nil
}

// Create stores a new recipe with its ingredients. Every referenced
// product must already exist.
func (s *recipeService) Create(ctx context.Context, req *model.RecipeRequest) (*model.Recipe, error) {
	if err := s.validateRecipeRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &model.Recipe{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	recipe.Ingredients = make([]model.Ingredient, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		recipe.Ingredients[i] = model.Ingredient{
			ID:        uuid.New(),
			RecipeID:  recipe.ID,
			ProductID: ing.ProductID,
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		s.logger.Error().Err(err).Str("recipe", req.Name).Msg("failed to create recipe")
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info().
		Str("recipe_id", recipe.ID.String()).
		Str("name", recipe.Name).
		Int("ingredients", len(recipe.Ingredients)).
		Msg("recipe created")

	return recipe, nil
}

// Update applies a partial update to a recipe: nil request fields keep
// the stored value.
func (s *recipeService) Update(ctx context.Context, id uuid.UUID, req *model.RecipeUpdateRequest) (*model.Recipe, error) {
	if req == nil {
		return nil, fmt.Errorf("recipe update request is nil")
	}

	recipe, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Category != nil {
		recipe.Category = *req.Category
	}
	recipe.UpdatedAt = time.Now()

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id.String()).Msg("failed to update recipe")
		return nil, err
	}

	s.logger.Info().Str("recipe_id", id.String()).Msg("recipe updated")

	return recipe, nil
}

// Delete removes a recipe and its ingredients.
func (s *recipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("recipe_id", id.String()).Msg("recipe deleted")

	return nil
}

// validateRecipeRequest validates a creation request and confirms all
// referenced products exist.
func (s *recipeService) validateRecipeRequest(ctx context.Context, req *model.RecipeRequest) error {
	if req == nil {
		return fmt.Errorf("recipe request is nil")
	}

	if req.Name == "" {
		return fmt.Errorf("recipe name is required")
	}

	for i, ing := range req.Ingredients {
		if ing.ProductID == "" {
			return fmt.Errorf("ingredient %d: product ID is required", i)
		}
		if ing.Quantity <= 0 {
			s.logger.Warn().
				Int("ingredient_index", i).
				Str("product_id", ing.ProductID).
				Int("quantity", ing.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		product, err := s.productRepo.GetByID(ctx, ing.ProductID)
		if err != nil {
			return fmt.Errorf("failed to validate product %s: %w", ing.ProductID, err)
		}
		if product == nil {
			return model.ErrProductNotFound
		}
	}

	return nil
}
