package model

import (
	"fmt"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeRecipeNotFound    = "RECIPE_NOT_FOUND"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeTooManyMatches    = "TOO_MANY_MATCHES"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeAmbiguousProduct  = "AMBIGUOUS_PRODUCT"
	ErrCodeNoPackCombination = "NO_PACK_COMBINATION"
	ErrCodeUnavailableInCart = "UNAVAILABLE_IN_CART"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business logic error with a stable API code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrRecipeNotFound  = NewDomainError(ErrCodeRecipeNotFound, "Recipe not found")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrTooManyMatches  = NewDomainError(ErrCodeTooManyMatches, "Too many rows match the query")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must not be negative")
	// ErrAmbiguousProduct is returned when a cart item cannot be located in
	// its own search results, so the canonical decorator count is unknown.
	ErrAmbiguousProduct = NewDomainError(ErrCodeAmbiguousProduct, "Cart item not present in its own search results")
	// ErrNoPackCombination is returned when the greedy decomposition finds
	// no packaging that fits the remaining quantity.
	ErrNoPackCombination = NewDomainError(ErrCodeNoPackCombination, "No packaging fits the remaining quantity")
)

// PreconditionFailedError reports cart items that are unavailable at the
// cart service. It aborts every discount operation before any mutation.
type PreconditionFailedError struct {
	Unavailable []string
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("unavailable products in cart: [%s]", strings.Join(e.Unavailable, ", "))
}
