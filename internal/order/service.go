package order

import (
	"time"

	"github.com/farmaciavital/pharmacy-backend/internal/product"
)

// ServiceInterface is the slice of the order service the payment package
// depends on.
type ServiceInterface interface {
	GetByID(orderID, userID string) (Order, error)
	MarkPaid(orderID, sessionRef string) error
}

// Service provides business logic for orders. This is the only place an
// order is created.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Checkout freezes the requested line items into a pending order. Every
// product must resolve against the catalog; if any does not, the checkout
// fails as a whole and nothing is persisted.
func (s *Service) Checkout(userID string, requested []Item) (CheckoutResult, error) {
	if userID == "" {
		return CheckoutResult{}, ErrNotFound
	}
	if len(requested) == 0 {
		return CheckoutResult{}, ErrEmptyOrder
	}

	total := 0.0
	items := make([]Item, 0, len(requested))
	for _, it := range requested {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		p, err := s.products.GetByID(it.ProductID)
		if err != nil {
			if err == product.ErrNotFound {
				return CheckoutResult{}, ErrProductUnavailable
			}
			return CheckoutResult{}, err
		}
		total += p.Price * float64(it.Quantity)
		items = append(items, it)
	}

	ord := Order{
		UserID:      userID,
		Items:       items,
		TotalAmount: total,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	created, err := s.repo.Create(ord)
	if err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{
		OrderID:     created.ID,
		TotalAmount: created.TotalAmount,
		Currency:    Currency,
		Status:      created.Status,
	}, nil
}

func (s *Service) GetByID(orderID, userID string) (Order, error) {
	return s.repo.GetByID(orderID, userID)
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(userID string) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

// MarkPaid transitions an order to paid and attaches the payment session
// reference. Called by the payment processor after a successful charge.
func (s *Service) MarkPaid(orderID, sessionRef string) error {
	return s.repo.UpdateStatus(orderID, StatusPaid, sessionRef)
}

// Summary builds the pre-payment recap for an order. Items are enriched
// with live catalog data for display, but the total is the frozen amount
// captured at checkout.
func (s *Service) Summary(orderID, userID string) (Summary, error) {
	ord, err := s.repo.GetByID(orderID, userID)
	if err != nil {
		return Summary{}, err
	}

	ids := make([]string, 0, len(ord.Items))
	for _, it := range ord.Items {
		ids = append(ids, it.ProductID)
	}
	byID := map[string]product.Product{}
	if len(ids) > 0 {
		prods, err := s.products.ListByIDs(ids)
		if err != nil {
			return Summary{}, err
		}
		for _, p := range prods {
			byID[p.ID] = p
		}
	}

	items := make([]SummaryItem, 0, len(ord.Items))
	for _, it := range ord.Items {
		line := SummaryItem{ProductID: it.ProductID, Quantity: it.Quantity}
		if p, ok := byID[it.ProductID]; ok {
			line.Name = p.Name
			line.Description = p.Description
			line.Price = p.Price
			line.Total = p.Price * float64(it.Quantity)
			line.ImageURL = p.ImageURL
			line.Available = true
		}
		items = append(items, line)
	}

	return Summary{
		OrderID:     ord.ID,
		Items:       items,
		TotalAmount: ord.TotalAmount,
		Currency:    Currency,
		Status:      ord.Status,
	}, nil
}
