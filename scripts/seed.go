// Command seed populates the database with a handful of products and
// recipes for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fastnic/internal/config"
	"fastnic/internal/database"
	"fastnic/internal/model"
	"fastnic/internal/repository"
	"fastnic/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	productRepo := repository.NewProductRepository(pool, logger)
	recipeRepo := repository.NewRecipeRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	recipeService := service.NewRecipeService(recipeRepo, productRepo, logger)

	products := []model.ProductRequest{
		{ID: "10407428", Name: "Spaghetti", Category: "pantry"},
		{ID: "10260939", Name: "Passata", Category: "pantry"},
		{ID: "10352728", Name: "Parmigiano Reggiano", Category: "dairy"},
		{ID: "10511276", Name: "Eieren", Category: "dairy"},
		{ID: "10240140", Name: "Guanciale", Category: "meat"},
	}

	for _, p := range products {
		if _, err := productService.Create(ctx, &p); err != nil {
			logger.Warn().Err(err).Str("product_id", p.ID).Msg("skipping product")
		}
	}

	recipes := []model.RecipeRequest{
		{
			Name:     "Spaghetti Carbonara",
			Category: "dinner",
			Ingredients: []model.IngredientRequest{
				{ProductID: "10407428", Name: "Spaghetti", Quantity: 1},
				{ProductID: "10511276", Name: "Eieren", Quantity: 4},
				{ProductID: "10352728", Name: "Parmigiano Reggiano", Quantity: 1},
				{ProductID: "10240140", Name: "Guanciale", Quantity: 1},
			},
		},
		{
			Name:     "Pasta Pomodoro",
			Category: "dinner",
			Ingredients: []model.IngredientRequest{
				{ProductID: "10407428", Name: "Spaghetti", Quantity: 1},
				{ProductID: "10260939", Name: "Passata", Quantity: 2},
			},
		},
	}

	for _, r := range recipes {
		if _, err := recipeService.Create(ctx, &r); err != nil {
			logger.Warn().Err(err).Str("recipe", r.Name).Msg("skipping recipe")
			continue
		}
		logger.Info().Str("recipe", r.Name).Msg("recipe seeded")
	}

	logger.Info().Msg("seeding complete")

	return nil
}
