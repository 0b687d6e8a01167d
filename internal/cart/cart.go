package cart

import "errors"

var ErrItemNotFound = errors.New("item not found in cart")

// Cart holds a user's current selection. One cart per user, created lazily
// on first access and only ever emptied, never deleted.
type Cart struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Items     []Item `json:"items"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Item is a single cart line: a product reference, a quantity and an
// optional uploaded prescription reference.
type Item struct {
	ProductID        string  `json:"product_id"`
	Quantity         int     `json:"quantity"`
	PrescriptionFile *string `json:"prescription_file,omitempty"`
}

// PricedItem is a cart line enriched with catalog data at read time.
// Available is false when the product can no longer be resolved; such
// lines keep their place in the cart but contribute nothing to the total.
type PricedItem struct {
	ProductID            string  `json:"product_id"`
	Quantity             int     `json:"quantity"`
	PrescriptionFile     *string `json:"prescription_file,omitempty"`
	Name                 string  `json:"name,omitempty"`
	Price                float64 `json:"price"`
	ImageURL             *string `json:"image_url,omitempty"`
	RequiresPrescription bool    `json:"requires_prescription"`
	Available            bool    `json:"available"`
}

// PricedCart is the enriched cart shape returned by every cart endpoint.
type PricedCart struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Items     []PricedItem `json:"items"`
	Total     float64      `json:"total"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}
