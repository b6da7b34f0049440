package product

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Remote lists the catalog from the backend.
type Remote interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// CachedRepository keeps the last listing for ttl so the product screen and
// cart lookups do not refetch on every request. A failed refresh serves the
// stale listing when one exists.
type CachedRepository struct {
	remote Remote
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	storage   []Product
	fetchedAt time.Time
}

func NewCachedRepository(remote Remote, ttl time.Duration) *CachedRepository {
	return &CachedRepository{remote: remote, ttl: ttl, now: time.Now}
}

func (r *CachedRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	fresh := r.storage != nil && r.now().Sub(r.fetchedAt) < r.ttl
	out := cloneProducts(r.storage)
	r.mu.RUnlock()
	if fresh {
		return out, nil
	}

	items, err := r.remote.ListProducts(ctx)
	if err != nil {
		if out != nil {
			return out, nil
		}
		return nil, err
	}

	r.mu.Lock()
	r.storage = cloneProducts(items)
	r.fetchedAt = r.now()
	r.mu.Unlock()
	return items, nil
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (Product, error) {
	items, err := r.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Invalidate drops the cached listing.
func (r *CachedRepository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = nil
}

func cloneProducts(in []Product) []Product {
	if in == nil {
		return nil
	}
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
