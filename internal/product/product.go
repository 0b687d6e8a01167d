package product

import "errors"

var ErrNotFound = errors.New("product not found")

// Product represents an item in the pharmacy catalog and maps to the
// `products` table. Prices are plain COP amounts, the same unit the
// catalog stores (8500 means 8500 COP).
type Product struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Price                float64 `json:"price"`
	Category             string  `json:"category"`
	Stock                int     `json:"stock"`
	ImageURL             *string `json:"image_url,omitempty"`
	RequiresPrescription bool    `json:"requires_prescription"`
	Active               bool    `json:"active"`
	CreatedAt            string  `json:"created_at,omitempty"`
}
