package banner

import (
	"context"
	"log"
)

type Remote interface {
	ListBanners(ctx context.Context) ([]Banner, error)
}

type Service struct {
	remote Remote
}

func NewService(r Remote) *Service {
	return &Service{remote: r}
}

// List returns up to limit banners that have an image.
func (s *Service) List(ctx context.Context, limit int) []Banner {
	items, err := s.remote.ListBanners(ctx)
	if err != nil {
		log.Println("[BANNER] [WARN] list failed:", err)
		return []Banner{}
	}
	out := make([]Banner, 0, len(items))
	for _, b := range items {
		if b.Image == "" {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
