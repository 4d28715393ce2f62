package dealicious

import (
	"context"
	"fmt"

	"fastnic/internal/model"
	"fastnic/internal/picnic"
)

// Combine walks the cart and, for every product whose purchased quantity
// can be re-expressed as a combination of differently-packaged variants,
// replaces units of the original packaging with the substitutes.
//
// Mutations for a product are planned in full before any cart call, but
// the remove/add pairs themselves are independent calls with no
// transaction: a failure mid-sequence leaves the cart partially combined.
func (s *service) Combine(ctx context.Context) error {
	s.logger.Info().Msg("combining discounts")

	cart, err := s.cartIfAvailable(ctx)
	if err != nil {
		return err
	}

	for _, item := range cart {
		quantity := item.Quantity()
		if quantity <= 1 {
			s.logger.Debug().Str("name", item.Name).Msg("skipping, nothing to combine")
			continue
		}

		s.logger.Debug().Str("name", item.Name).Msg("combining discounts for product")

		results, err := s.client.Search(ctx, item.Name)
		if err != nil {
			return err
		}

		packSizes, candidates, err := discountCandidates(item, results)
		if err != nil {
			return fmt.Errorf("product %s: %w", item.Name, err)
		}
		if len(packSizes) == 0 {
			s.logger.Debug().Str("name", item.Name).Msg("no alternative packaging found")
			continue
		}

		mutations, err := planCombination(item.ID, quantity, packSizes, candidates)
		if err != nil {
			return fmt.Errorf("product %s: %w", item.Name, err)
		}

		for _, m := range mutations {
			if err := s.client.RemoveProduct(ctx, m.RemoveID, m.RemoveCount); err != nil {
				return err
			}
			if err := s.client.AddProduct(ctx, m.AddID, m.AddCount); err != nil {
				return err
			}
		}

		s.logger.Debug().
			Str("name", item.Name).
			Int("steps", len(mutations)).
			Msg("combined product packaging")
	}

	return nil
}

// discountCandidates filters the search results down to packagings the
// purchased product can be re-expressed in. A candidate must be a single
// article of the exact same name, in a genuinely different packaging that
// carries the product's unit label, with the same decorator count as the
// product's own search entry. The returned pack sizes parallel the
// candidates, in search-result order.
func discountCandidates(item picnic.CartItem, results []picnic.SearchResult) ([]int, []picnic.SearchResult, error) {
	var self *picnic.SearchResult
	for i := range results {
		if results[i].ID == item.ID {
			// First match wins; duplicates are not trusted to differ.
			self = &results[i]
			break
		}
	}
	if self == nil {
		return nil, nil, model.ErrAmbiguousProduct
	}

	var packSizes []int
	var candidates []picnic.SearchResult
	for _, result := range results {
		if result.Type != picnic.ArticleTypeSingle {
			continue
		}
		if !result.UnitQuantity.ContainsUnit(item.UnitQuantity.Unit()) {
			continue
		}
		if result.UnitQuantity.Equal(item.UnitQuantity) {
			continue
		}
		if result.Name != item.Name {
			continue
		}
		if len(result.Decorators) != len(self.Decorators) {
			continue
		}

		size, ok := result.UnitQuantity.PackSize()
		if !ok {
			continue
		}

		packSizes = append(packSizes, size)
		candidates = append(candidates, result)
	}

	return packSizes, candidates, nil
}

// planCombination greedily decomposes the purchased quantity into the
// available pack sizes and returns the mutation sequence realizing it.
// Selection is positional: the entry at the highest list index whose size
// fits the remainder wins, not the numerically largest size.
func planCombination(productID string, quantity int, packSizes []int, candidates []picnic.SearchResult) ([]Mutation, error) {
	var mutations []Mutation

	remaining := quantity
	for remaining > 1 {
		index, size := findLastNumberBelow(remaining, packSizes)
		if size == 0 {
			// No pack fits the remainder; stopping here instead of
			// spinning forever.
			return nil, model.ErrNoPackCombination
		}

		remaining -= size
		mutations = append(mutations, Mutation{
			RemoveID:    productID,
			RemoveCount: size,
			AddID:       candidates[index].ID,
			AddCount:    1,
		})
	}

	return mutations, nil
}

// findLastNumberBelow returns the index and value of the last list entry
// that does not exceed the given number, or (0, 0) when none does.
func findLastNumberBelow(given int, nums []int) (int, int) {
	lastIndex := 0
	lastNumber := 0
	for index, num := range nums {
		if num <= given {
			lastIndex = index
			lastNumber = num
		}
	}

	return lastIndex, lastNumber
}
