package service

import (
	"context"
	"fmt"
	"time"

	"fastnic/internal/model"
	"fastnic/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create stores a new product.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, fmt.Errorf("product request is nil")
	}
	if req.ID == "" {
		return nil, fmt.Errorf("product ID is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}

	now := time.Now()
	product := &model.Product{
		ID:        req.ID,
		Name:      req.Name,
		Category:  req.Category,
		ImageURI:  req.ImageURI,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Msg("product created")

	return product, nil
}

// Update applies a partial update to a product: nil request fields keep
// the stored value.
func (s *productService) Update(ctx context.Context, id string, req *model.ProductUpdateRequest) (*model.Product, error) {
	if req == nil {
		return nil, fmt.Errorf("product update request is nil")
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURI != nil {
		product.ImageURI = *req.ImageURI
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}
