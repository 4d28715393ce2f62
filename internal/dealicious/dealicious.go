// Package dealicious implements the discount optimizer: the pack-size
// combiner and the promo redeemer, both operating on a fresh snapshot of
// the external shopping cart.
package dealicious

import (
	"context"

	"fastnic/internal/picnic"

	"github.com/rs/zerolog"
)

// CartClient is the subset of the cart service API the optimizer needs.
type CartClient interface {
	GetCart(ctx context.Context) ([]picnic.CartItem, error)
	Search(ctx context.Context, name string) ([]picnic.SearchResult, error)
	AddProduct(ctx context.Context, productID string, count int) error
	RemoveProduct(ctx context.Context, productID string, count int) error
}

// Service exposes the discount operations.
type Service interface {
	// Combine re-expresses purchased quantities as cheaper pack
	// combinations and mutates the cart accordingly.
	Combine(ctx context.Context) error

	// FindPromos scans the cart for items with a promotional offer.
	FindPromos(ctx context.Context) ([]PromoCandidate, error)

	// ApplyPromos tops up the cart to each candidate's promo threshold.
	ApplyPromos(ctx context.Context, candidates []PromoCandidate) error
}

// Mutation is one greedy step of a pack combination: remove RemoveCount
// units of the original article, add one unit of the substitute pack.
type Mutation struct {
	RemoveID    string
	RemoveCount int
	AddID       string
	AddCount    int
}

// PromoCandidate is a cart item carrying a promotional offer, captured
// with its current purchased quantity.
type PromoCandidate struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Quantity  int    `json:"quantity"`
	PromoText string `json:"promo_text"`
}

// service implements Service against a cart client. It holds no cart
// state: every operation re-fetches the cart and works on that snapshot.
type service struct {
	client CartClient
	logger zerolog.Logger
}

// NewService creates a new discount optimizer service.
func NewService(client CartClient, logger zerolog.Logger) Service {
	return &service{
		client: client,
		logger: logger.With().Str("service", "dealicious").Logger(),
	}
}

// cartIfAvailable fetches the cart and fails closed when any item is
// unavailable. Every discount operation starts here.
func (s *service) cartIfAvailable(ctx context.Context) ([]picnic.CartItem, error) {
	s.logger.Debug().Msg("getting shopping cart")

	cart, err := s.client.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	if err := CheckAvailability(cart); err != nil {
		return nil, err
	}

	return cart, nil
}
