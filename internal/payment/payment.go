package payment

import "github.com/farmaciavital/pharmacy-backend/internal/card"

// Status is the lifecycle state of a payment transaction. Only completed
// rows are written by the current flow; pending and failed exist for a
// real gateway integration.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Rejection reasons returned to the client. Validation failures are always
// structured results, never transport errors.
const (
	ReasonAmountMismatch = "amount mismatch"
	ReasonInvalidNumber  = "invalid card number"
	ReasonInvalidExpiry  = "invalid or expired expiry date"
	ReasonInvalidCVV     = "invalid CVV"
	ReasonDeclined       = "card rejected by issuing bank"
	ReasonInternal       = "internal server error"
)

// Transaction records one approved payment attempt. Rows are immutable
// after creation.
type Transaction struct {
	ID           string  `json:"id"`
	Code         string  `json:"transaction_id"`
	Email        string  `json:"email"`
	UserID       string  `json:"user_id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	CardLastFour string  `json:"card_last_four"`
	CardBrand    string  `json:"card_type"`
	Status       Status  `json:"status"`
	OrderID      *string `json:"order_id,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// Result is the outcome of a payment attempt.
type Result struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// CardValidation is the outcome of the read-only pre-validation endpoint.
type CardValidation struct {
	Valid  bool       `json:"valid"`
	Brand  card.Brand `json:"brand,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// CardDetails are the card fields supplied by the client.
type CardDetails struct {
	Number         string `json:"cardNumber"`
	Expiry         string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName,omitempty"`
}

// ProcessRequest is a full payment attempt against the user's current cart.
type ProcessRequest struct {
	Email    string      `json:"email"`
	Amount   float64     `json:"amount"`
	Currency string      `json:"currency,omitempty"`
	OrderID  *string     `json:"order_id,omitempty"`
	Card     CardDetails `json:"card"`
}
