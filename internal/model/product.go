package model

import "time"

// Product represents a grocery product known to the cart service. The ID
// is the external product identifier, not a locally generated key.
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	ImageURI  string    `json:"imageUri" db:"image_uri"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductRequest represents the request payload for creating a product.
type ProductRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageURI string `json:"imageUri"`
}

// ProductUpdateRequest represents a partial update of a product. Nil
// fields are left unchanged.
type ProductUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	ImageURI *string `json:"imageUri,omitempty"`
}
