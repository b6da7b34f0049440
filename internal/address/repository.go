package address

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

var (
	ErrNotFound     = errors.New("address not found")
	ErrLastAddress  = errors.New("you must keep at least one address")
	ErrInvalidInput = errors.New("invalid address payload")
)

// Remote is the slice of the backend the store talks to when the user is
// signed in.
type Remote interface {
	DeleteAddress(ctx context.Context, id string) error
	SetDefaultAddress(ctx context.Context, id string) error
}

// Credentials reports whether a bearer token is available.
type Credentials interface {
	HasToken() bool
}

// ProfileSource provides the cached profile used to seed the first address.
type ProfileSource interface {
	Profile() (user.Profile, bool)
}

// SnapshotRepository persists the default address under shippingAddress.
type SnapshotRepository interface {
	LoadDefault(ctx context.Context) (*Address, error)
	SaveDefault(ctx context.Context, a Address) error
}

type KVRepository struct {
	kv repository.KeyValueStore
}

func NewKVRepository(kv repository.KeyValueStore) *KVRepository {
	return &KVRepository{kv: kv}
}

// LoadDefault returns nil without error when no snapshot was saved.
func (r *KVRepository) LoadDefault(ctx context.Context) (*Address, error) {
	raw, err := r.kv.Get(ctx, repository.KeyShippingAddress)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var a Address
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *KVRepository) SaveDefault(ctx context.Context, a Address) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, repository.KeyShippingAddress, string(b))
}
