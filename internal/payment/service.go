package payment

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmaciavital/pharmacy-backend/internal/card"
	"github.com/farmaciavital/pharmacy-backend/internal/cart"
)

// amountEpsilon is the rounding tolerance when reconciling the requested
// amount against the live cart total.
const amountEpsilon = 0.01

// CartPricer supplies the reference total a payment is validated against.
type CartPricer interface {
	Price(userID string) ([]cart.PricedItem, float64, error)
}

// Service runs the payment state machine. Each attempt is terminal in one
// call: reconcile, validate, authorize, record.
type Service struct {
	repo   Repository
	carts  CartPricer
	policy AuthorizationPolicy
	log    zerolog.Logger
}

func NewService(repo Repository, carts CartPricer, policy AuthorizationPolicy, log zerolog.Logger) *Service {
	return &Service{repo: repo, carts: carts, policy: policy, log: log}
}

// Process attempts to charge the user's current cart. Rejections and
// internal failures both come back as a structured Result; the caller never
// sees a raw error.
// TODO: accept an idempotency key so a retried request cannot double-charge.
func (s *Service) Process(userID string, req ProcessRequest) Result {
	_, cartTotal, err := s.carts.Price(userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("payment: cart pricing failed")
		return Result{Success: false, Reason: ReasonInternal}
	}

	if math.Abs(req.Amount-cartTotal) > amountEpsilon {
		return Result{Success: false, Reason: ReasonAmountMismatch}
	}
	if !card.ValidateNumber(req.Card.Number) {
		return Result{Success: false, Reason: ReasonInvalidNumber}
	}
	if !card.ValidateExpiry(req.Card.Expiry) {
		return Result{Success: false, Reason: ReasonInvalidExpiry}
	}
	if !card.ValidateCVV(req.Card.CVV) {
		return Result{Success: false, Reason: ReasonInvalidCVV}
	}

	if !s.policy.Authorize(req.Amount, req.Card.Number) {
		return Result{Success: false, Reason: ReasonDeclined}
	}

	currency := req.Currency
	if currency == "" {
		currency = "COP"
	}

	code := newTransactionCode(time.Now().UTC())
	txn := Transaction{
		Code:         code,
		Email:        req.Email,
		UserID:       userID,
		Amount:       req.Amount,
		Currency:     currency,
		CardLastFour: card.LastFour(req.Card.Number),
		CardBrand:    string(card.Classify(req.Card.Number)),
		Status:       StatusCompleted,
		OrderID:      req.OrderID,
	}
	if err := s.repo.InsertCompleted(txn); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("payment: recording transaction failed")
		return Result{Success: false, Reason: ReasonInternal}
	}

	return Result{Success: true, TransactionID: code}
}

// ValidateCard runs the static card checks with no cart or amount context,
// for client-side pre-validation.
func (s *Service) ValidateCard(details CardDetails) CardValidation {
	if !card.ValidateNumber(details.Number) {
		return CardValidation{Valid: false, Reason: ReasonInvalidNumber}
	}
	if !card.ValidateExpiry(details.Expiry) {
		return CardValidation{Valid: false, Reason: ReasonInvalidExpiry}
	}
	if !card.ValidateCVV(details.CVV) {
		return CardValidation{Valid: false, Reason: ReasonInvalidCVV}
	}
	return CardValidation{Valid: true, Brand: card.Classify(details.Number)}
}

// newTransactionCode builds codes like TXN_20260829_153012_9f2c41ab.
func newTransactionCode(now time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// extremely unlikely; fall back to the timestamp alone
		return "TXN_" + now.Format("20060102_150405")
	}
	return "TXN_" + now.Format("20060102_150405") + "_" + hex.EncodeToString(buf[:])
}
