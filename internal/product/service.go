package product

import (
	"context"
	"strings"

	"github.com/wichananm65/ride-shop-client/internal/cart"
)

type Service struct {
	repo *CachedRepository
	cart *cart.Store
}

func NewService(repo *CachedRepository, c *cart.Store) *Service {
	return &Service{repo: repo, cart: c}
}

// List filters the catalog by category (case-insensitive) and by a search
// term matched against name and description.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(f.Category)
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if category == "" && search == "" {
		return items, nil
	}

	out := make([]Product, 0, len(items))
	for _, p := range items {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// AddToCart looks the product up in the catalog and adds it to the cart.
func (s *Service) AddToCart(ctx context.Context, id string) ([]cart.Item, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cart.AddToCart(ctx, p.CartProduct()), nil
}

func (s *Service) Refresh() {
	s.repo.Invalidate()
}
