package category

import (
	"context"
	"log"
)

// Remote lists categories from the backend.
type Remote interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

type Service struct {
	remote Remote
}

func NewService(r Remote) *Service {
	return &Service{remote: r}
}

// List returns at most limit categories. The category strip is decorative,
// so a backend failure yields an empty list.
func (s *Service) List(ctx context.Context, limit int) []Category {
	items, err := s.remote.ListCategories(ctx)
	if err != nil {
		log.Println("[CATEGORY] [WARN] list failed:", err)
		return []Category{}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
