package dealicious

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"fastnic/internal/model"
)

var digitRuns = regexp.MustCompile(`\b\d+\b`)

// ExtractThreshold derives the promotional threshold from free-text promo
// copy by summing every maximal run of decimal digits. "buy 3 for the
// price of 2" yields 5. Price fragments are summed along with quantities
// ("2 for 1.50" yields 53); that is the observed behavior of the offer
// texts this runs against, not a parser of their grammar.
func ExtractThreshold(promoText string) int {
	total := 0
	for _, run := range digitRuns.FindAllString(promoText, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		total += n
	}

	return total
}

// FindPromos scans the cart for items whose canonical search entry
// carries a PROMO decorator and reports them with their current
// purchased quantity and the offer text.
func (s *service) FindPromos(ctx context.Context) ([]PromoCandidate, error) {
	s.logger.Info().Msg("searching for promo discounts")

	cart, err := s.cartIfAvailable(ctx)
	if err != nil {
		return nil, err
	}

	candidates := []PromoCandidate{}
	for _, item := range cart {
		results, err := s.client.Search(ctx, item.Name)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			s.logger.Debug().Str("name", item.Name).Msg("no search results for cart item")
			continue
		}

		original := results[0]
		text, ok := original.PromoText()
		if !ok {
			continue
		}

		s.logger.Debug().Str("name", original.Name).Msg("found promo discount")
		candidates = append(candidates, PromoCandidate{
			Name:      item.Name,
			ID:        item.ID,
			Quantity:  item.Quantity(),
			PromoText: text,
		})
	}

	return candidates, nil
}

// ApplyPromos tops up the cart to each candidate's extracted threshold.
// The availability guard runs against a fresh cart snapshot before any
// mutation. A candidate already past its threshold fails the whole
// operation with InvalidQuantity; a zero top-up is still passed to the
// cart service.
func (s *service) ApplyPromos(ctx context.Context, candidates []PromoCandidate) error {
	s.logger.Info().Msg("applying promo discounts")

	if _, err := s.cartIfAvailable(ctx); err != nil {
		return err
	}

	for _, candidate := range candidates {
		s.logger.Debug().Str("name", candidate.Name).Msg("applying promo discount")

		threshold := ExtractThreshold(candidate.PromoText)
		count := threshold - candidate.Quantity
		if count < 0 {
			return fmt.Errorf("promo for %s: top-up of %d: %w", candidate.Name, count, model.ErrInvalidQuantity)
		}

		if err := s.client.AddProduct(ctx, candidate.ID, count); err != nil {
			return err
		}
	}

	return nil
}
