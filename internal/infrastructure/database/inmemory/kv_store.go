package inmemory

import (
	"context"
	"sync"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
)

// KVStore is an in-memory implementation of KeyValueStore.
type KVStore struct {
	mu    sync.RWMutex
	store map[string]string
}

var _ repository.KeyValueStore = (*KVStore)(nil)

func NewKVStore(seed map[string]string) *KVStore {
	s := &KVStore{store: make(map[string]string, len(seed))}
	for k, v := range seed {
		s.store[k] = v
	}
	return s
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.store[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}
	return v, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = value
	return nil
}

func (s *KVStore) Remove(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.store, k)
	}
	return nil
}

// Has reports whether key is present. Used by tests and diagnostics.
func (s *KVStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.store[key]
	return ok
}
