package service

import (
	"context"
	"fmt"

	"fastnic/internal/model"
	"fastnic/internal/picnic"
	"fastnic/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService against the recipe store and the
// external cart service.
type orderService struct {
	recipeRepo repository.RecipeRepository
	cart       picnic.Client
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	recipeRepo repository.RecipeRepository,
	cart picnic.Client,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		recipeRepo: recipeRepo,
		cart:       cart,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder adds every ingredient of every named recipe to the cart,
// one add-product call per ingredient with its stored quantity. No
// combining or promo logic runs at order time.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) ([]model.Ingredient, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}
	if len(req.Recipes) == 0 {
		return nil, fmt.Errorf("order must name at least one recipe")
	}

	s.logger.Debug().Int("recipes", len(req.Recipes)).Msg("creating order")

	var ordered []model.Ingredient
	for _, name := range req.Recipes {
		recipe, err := s.recipeRepo.GetByName(ctx, name)
		if err != nil {
			s.logger.Warn().Err(err).Str("recipe", name).Msg("recipe lookup failed")
			return nil, err
		}

		s.logger.Debug().Str("recipe", recipe.Name).Msg("adding recipe to order")
		for _, ingredient := range recipe.Ingredients {
			if err := s.cart.AddProduct(ctx, ingredient.ProductID, ingredient.Quantity); err != nil {
				s.logger.Error().
					Err(err).
					Str("recipe", recipe.Name).
					Str("product_id", ingredient.ProductID).
					Msg("failed to add ingredient to cart")
				return nil, err
			}
			ordered = append(ordered, ingredient)
		}
	}

	s.logger.Info().Int("ingredients", len(ordered)).Msg("order created")

	return ordered, nil
}
