package order

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for orders.
type Repository interface {
	// Create persists the order and all of its items as a single atomic
	// unit and returns the stored order.
	Create(ord Order) (Order, error)

	// GetByID returns the order with its items. The userID guard keeps
	// users from reading each other's orders.
	GetByID(id, userID string) (Order, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(userID string) ([]Order, error)

	// UpdateStatus transitions the order status and, when sessionRef is
	// non-empty, attaches it as the payment session reference.
	UpdateStatus(id string, status Status, sessionRef string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make([]Order, 0)}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	if ord.CreatedAt == "" {
		ord.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id, userID string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id && o.UserID == userID {
			out := o
			out.Items = append([]Item(nil), o.Items...)
			return out, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	// newest first
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id string, status Status, sessionRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			if sessionRef != "" {
				ref := sessionRef
				r.orders[i].PaymentSessionID = &ref
			}
			return nil
		}
	}
	return ErrNotFound
}
