package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
)

func TestKVStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(map[string]string{repository.KeyToken: "abc"})

	if v, err := s.Get(ctx, repository.KeyToken); err != nil || v != "abc" {
		t.Fatalf("expected seeded token, got %q, %v", v, err)
	}
	if err := s.Set(ctx, repository.KeyCart, "[]"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Remove(ctx, repository.KeyCart, repository.KeyToken, "missing"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := s.Get(ctx, repository.KeyCart); !errors.Is(err, repository.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if s.Has(repository.KeyToken) {
		t.Fatalf("token should have been removed")
	}
}
