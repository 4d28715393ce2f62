package dealicious

import (
	"context"
	"fmt"

	"fastnic/internal/picnic"
)

// fakeCartClient is a scripted cart service recording every mutation in
// order.
type fakeCartClient struct {
	cart      []picnic.CartItem
	cartErr   error
	searches  map[string][]picnic.SearchResult
	searchErr error

	addErr    error
	removeErr error

	calls []string
}

func newFakeCartClient() *fakeCartClient {
	return &fakeCartClient{searches: map[string][]picnic.SearchResult{}}
}

func (f *fakeCartClient) GetCart(ctx context.Context) ([]picnic.CartItem, error) {
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return f.cart, nil
}

func (f *fakeCartClient) Search(ctx context.Context, name string) ([]picnic.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searches[name], nil
}

func (f *fakeCartClient) AddProduct(ctx context.Context, productID string, count int) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.calls = append(f.calls, fmt.Sprintf("add %s x%d", productID, count))
	return nil
}

func (f *fakeCartClient) RemoveProduct(ctx context.Context, productID string, count int) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.calls = append(f.calls, fmt.Sprintf("remove %s x%d", productID, count))
	return nil
}

// quantityDecorator builds a QUANTITY decorator for test carts.
func quantityDecorator(count int) picnic.Decorator {
	return picnic.Decorator{Type: picnic.DecoratorQuantity, Quantity: count}
}
