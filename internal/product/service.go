package product

// ServiceInterface is implemented by Service and consumed by the cart and
// order packages, which only need catalog lookups.
type ServiceInterface interface {
	GetByID(id string) (Product, error)
	ListByIDs(ids []string) ([]Product, error)
}

// Service orchestrates catalog reads.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id string) (Product, error) {
	if id == "" {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) List(category, search string) ([]Product, error) {
	return s.repo.List(category, search)
}

func (s *Service) ListByIDs(ids []string) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}
