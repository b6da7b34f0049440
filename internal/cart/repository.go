package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
)

var (
	ErrNotFound     = errors.New("cart item not found")
	ErrInvalidInput = errors.New("product id is required")
)

// Repository persists the cart snapshot between sessions.
type Repository interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
	Clear(ctx context.Context) error
}

// KVRepository stores the cart as a JSON array under user_cart_data.
type KVRepository struct {
	kv repository.KeyValueStore
}

func NewKVRepository(kv repository.KeyValueStore) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) Load(ctx context.Context) ([]Item, error) {
	raw, err := r.kv.Get(ctx, repository.KeyCart)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	if raw == "" || raw == "null" {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *KVRepository) Save(ctx context.Context, items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, repository.KeyCart, string(b))
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.kv.Remove(ctx, repository.KeyCart)
}
