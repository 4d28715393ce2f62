package dealicious

import (
	"errors"
	"testing"

	"fastnic/internal/model"
	"fastnic/internal/picnic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability_AllAvailable(t *testing.T) {
	cart := []picnic.CartItem{
		{ID: "A", Name: "Milk", Decorators: []picnic.Decorator{quantityDecorator(2)}},
		{ID: "B", Name: "Bread", Decorators: []picnic.Decorator{
			quantityDecorator(1),
			{Type: picnic.DecoratorPromo, Text: "2 for 1"},
		}},
	}

	assert.NoError(t, CheckAvailability(cart))
}

func TestCheckAvailability_EmptyCart(t *testing.T) {
	assert.NoError(t, CheckAvailability(nil))
}

func TestCheckAvailability_UnavailableItems(t *testing.T) {
	cart := []picnic.CartItem{
		{ID: "A", Name: "Milk", Decorators: []picnic.Decorator{quantityDecorator(2)}},
		{ID: "B", Name: "Bread", Decorators: []picnic.Decorator{
			{Type: picnic.DecoratorUnavailable},
		}},
		{ID: "C", Name: "Eggs", Decorators: []picnic.Decorator{
			quantityDecorator(1),
			{Type: picnic.DecoratorUnavailable},
		}},
	}

	err := CheckAvailability(cart)
	require.Error(t, err)

	var precondition *model.PreconditionFailedError
	require.True(t, errors.As(err, &precondition))
	assert.Equal(t, []string{"Bread", "Eggs"}, precondition.Unavailable)
	assert.Contains(t, err.Error(), "Bread")
}
