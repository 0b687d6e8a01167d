package cart

import (
	"github.com/farmaciavital/pharmacy-backend/internal/product"
)

// Service orchestrates cart operations and enriches carts with catalog data.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the user's cart, priced against the current catalog.
func (s *Service) Get(userID string) (PricedCart, error) {
	c, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return PricedCart{}, err
	}
	return s.price(c)
}

// AddItem puts a product into the cart, incrementing the quantity when the
// product is already there. The product must resolve to an active catalog
// entry; quantities below one are raised to one.
func (s *Service) AddItem(userID, productID string, quantity int, prescriptionFile *string) (PricedCart, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return PricedCart{}, err
	}
	if quantity < 1 {
		quantity = 1
	}

	c, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return PricedCart{}, err
	}
	if err := s.repo.UpsertItem(c.ID, Item{ProductID: productID, Quantity: quantity, PrescriptionFile: prescriptionFile}); err != nil {
		return PricedCart{}, err
	}
	return s.Get(userID)
}

// UpdateItem replaces a line's quantity. Negative quantities are clamped to
// zero and zero removes the line.
func (s *Service) UpdateItem(userID, productID string, quantity int) (PricedCart, error) {
	if quantity < 0 {
		quantity = 0
	}

	c, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return PricedCart{}, err
	}
	if err := s.repo.SetItemQuantity(c.ID, productID, quantity); err != nil {
		return PricedCart{}, err
	}
	return s.Get(userID)
}

// RemoveItem deletes a line if present; removing an absent line is not an
// error, the current cart is returned either way.
func (s *Service) RemoveItem(userID, productID string) (PricedCart, error) {
	c, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return PricedCart{}, err
	}
	if err := s.repo.RemoveItem(c.ID, productID); err != nil {
		return PricedCart{}, err
	}
	return s.Get(userID)
}

// Clear empties the user's cart.
func (s *Service) Clear(userID string) error {
	c, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(c.ID)
}

// Price resolves the user's cart against current catalog prices and returns
// the enriched lines plus the running total. Lines whose product no longer
// resolves are kept, marked unavailable and counted as zero.
func (s *Service) Price(userID string) ([]PricedItem, float64, error) {
	c, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return nil, 0, err
	}
	priced, err := s.price(c)
	if err != nil {
		return nil, 0, err
	}
	return priced.Items, priced.Total, nil
}

func (s *Service) price(c Cart) (PricedCart, error) {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}

	byID := map[string]product.Product{}
	if len(ids) > 0 {
		prods, err := s.products.ListByIDs(ids)
		if err != nil {
			return PricedCart{}, err
		}
		for _, p := range prods {
			byID[p.ID] = p
		}
	}

	out := PricedCart{ID: c.ID, UserID: c.UserID, Items: make([]PricedItem, 0, len(c.Items)), UpdatedAt: c.UpdatedAt}
	for _, it := range c.Items {
		line := PricedItem{
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			PrescriptionFile: it.PrescriptionFile,
		}
		if p, ok := byID[it.ProductID]; ok {
			line.Name = p.Name
			line.Price = p.Price
			line.ImageURL = p.ImageURL
			line.RequiresPrescription = p.RequiresPrescription
			line.Available = true
			out.Total += p.Price * float64(it.Quantity)
		}
		out.Items = append(out.Items, line)
	}
	return out, nil
}
