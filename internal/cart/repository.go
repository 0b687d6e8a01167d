package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository provides persistence for carts and their line items.
// Mutations are expected to refresh the cart's updated_at stamp.
type Repository interface {
	// GetOrCreate returns the user's cart with its items loaded,
	// creating an empty cart on first access.
	GetOrCreate(userID string) (Cart, error)

	// UpsertItem adds the line item, or increments the quantity of an
	// existing line for the same product.
	UpsertItem(cartID string, item Item) error

	// SetItemQuantity replaces a line's quantity. Quantity zero removes
	// the line. Returns ErrItemNotFound when the product is not in the
	// cart.
	SetItemQuantity(cartID, productID string, quantity int) error

	RemoveItem(cartID, productID string) error
	Clear(cartID string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*Cart // keyed by userID
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]*Cart)}
}

func (r *InMemoryRepository) GetOrCreate(userID string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		c = &Cart{ID: uuid.NewString(), UserID: userID, Items: []Item{}, UpdatedAt: nowStamp()}
		r.carts[userID] = c
	}
	out := *c
	out.Items = append([]Item(nil), c.Items...)
	return out, nil
}

func (r *InMemoryRepository) UpsertItem(cartID string, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(cartID)
	if c == nil {
		return ErrItemNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.UpdatedAt = nowStamp()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = nowStamp()
	return nil
}

func (r *InMemoryRepository) SetItemQuantity(cartID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(cartID)
	if c == nil {
		return ErrItemNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity == 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = nowStamp()
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(cartID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byID(cartID)
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = nowStamp()
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) Clear(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.byID(cartID); c != nil {
		c.Items = []Item{}
		c.UpdatedAt = nowStamp()
	}
	return nil
}

func (r *InMemoryRepository) byID(cartID string) *Cart {
	for _, c := range r.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
