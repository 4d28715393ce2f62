package dealicious

import (
	"fastnic/internal/model"
	"fastnic/internal/picnic"
)

// CheckAvailability returns nil when no cart item carries an UNAVAILABLE
// decorator, and a PreconditionFailedError naming the unavailable
// products otherwise. It has no side effects.
func CheckAvailability(cart []picnic.CartItem) error {
	var unavailable []string
	for _, item := range cart {
		if item.IsUnavailable() {
			unavailable = append(unavailable, item.Name)
		}
	}

	if len(unavailable) > 0 {
		return &model.PreconditionFailedError{Unavailable: unavailable}
	}

	return nil
}
