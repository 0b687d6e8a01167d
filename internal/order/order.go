package order

import "errors"

var (
	ErrNotFound = errors.New("order not found")

	// ErrProductUnavailable aborts checkout when any requested product
	// cannot be resolved; partially-priced orders are never created.
	ErrProductUnavailable = errors.New("product unavailable")

	ErrEmptyOrder = errors.New("order has no items")
)

// Currency is the only currency the catalog prices in.
const Currency = "COP"

// Status is the order lifecycle state. Only the pending→paid transition is
// driven by this backend; the rest belong to fulfillment.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Order represents a checked-out cart. TotalAmount is frozen at creation
// and never recomputed from live prices.
type Order struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Items            []Item  `json:"items"`
	TotalAmount      float64 `json:"total_amount"`
	Status           Status  `json:"status"`
	PaymentSessionID *string `json:"payment_session_id,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// Item is an order line snapshotted at checkout time.
type Item struct {
	ProductID        string  `json:"product_id"`
	Quantity         int     `json:"quantity"`
	PrescriptionFile *string `json:"prescription_file,omitempty"`
}

// CheckoutResult is the response shape of a successful checkout.
type CheckoutResult struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	Status      Status  `json:"status"`
}

// SummaryItem is an order line enriched with catalog data for the
// pre-payment recap. Unavailable products stay listed at price zero.
type SummaryItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
	ImageURL    *string `json:"image_url,omitempty"`
	Available   bool    `json:"available"`
}

// Summary is the pre-payment recap of an order. TotalAmount is the frozen
// order total, not a recomputation.
type Summary struct {
	OrderID     string        `json:"order_id"`
	Items       []SummaryItem `json:"items"`
	TotalAmount float64       `json:"total_amount"`
	Currency    string        `json:"currency"`
	Status      Status        `json:"status"`
}
