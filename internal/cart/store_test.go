package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
	"github.com/wichananm65/ride-shop-client/internal/infrastructure/database/inmemory"
)

// brokenKV fails every write, like a full or locked disk.
type brokenKV struct{}

func (brokenKV) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("disk unavailable")
}
func (brokenKV) Set(ctx context.Context, key, value string) error { return errors.New("disk full") }
func (brokenKV) Remove(ctx context.Context, keys ...string) error { return errors.New("disk full") }

func newTestStore(seed map[string]string) (*Store, *inmemory.KVStore) {
	kv := inmemory.NewKVStore(seed)
	return NewStore(NewKVRepository(kv)), kv
}

func TestAddToCart_SameProductIncrements(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)

	p := Product{ID: "p1", Name: "Rice", Price: 100}
	s.AddToCart(ctx, p)
	items := s.AddToCart(ctx, p)

	if len(items) != 1 {
		t.Fatalf("expected one line item, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	ctx := context.Background()
	for _, q := range []int{0, -1} {
		s, _ := newTestStore(nil)
		s.AddToCart(ctx, Product{ID: "p1", Price: 10})
		s.AddToCart(ctx, Product{ID: "p2", Price: 20})

		items := s.UpdateQuantity(ctx, "p1", q)
		if len(items) != 1 || items[0].ID != "p2" {
			t.Fatalf("quantity %d: expected p1 removed, got %+v", q, items)
		}
	}
}

func TestUpdateQuantity_SetsVerbatim(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)
	s.AddToCart(ctx, Product{ID: "p1", Price: 10})

	items := s.UpdateQuantity(ctx, "p1", 250)
	if items[0].Quantity != 250 {
		t.Fatalf("expected 250, got %d", items[0].Quantity)
	}
	// unknown id is a no-op
	items = s.UpdateQuantity(ctx, "nope", 3)
	if len(items) != 1 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestRemoveFromCart_MissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)
	s.AddToCart(ctx, Product{ID: "p1"})

	if items := s.RemoveFromCart(ctx, "missing"); len(items) != 1 {
		t.Fatalf("expected cart unchanged, got %+v", items)
	}
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)
	s.AddToCart(ctx, Product{ID: "a", Price: 1.25})
	s.UpdateQuantity(ctx, "a", 2)
	s.AddToCart(ctx, Product{ID: "b", Price: 0.5})
	s.UpdateQuantity(ctx, "b", 3)

	if got := s.GetCartItemsCount(); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
	if got := s.GetCartTotal(); got != 4.0 {
		t.Fatalf("expected total 4.0, got %v", got)
	}
}

func TestClearCart_RemovesSnapshot(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil)
	s.AddToCart(ctx, Product{ID: "p1", Price: 5})
	if !kv.Has(repository.KeyCart) {
		t.Fatalf("expected snapshot after add")
	}

	s.ClearCart(ctx)
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart")
	}
	if kv.Has(repository.KeyCart) {
		t.Fatalf("expected snapshot key removed")
	}
}

func TestRemoveOrdered_KeepsLinesAddedLater(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil)
	s.AddToCart(ctx, Product{ID: "p1", Price: 10})
	ordered := s.Items()

	s.AddToCart(ctx, Product{ID: "p1", Price: 10})
	s.AddToCart(ctx, Product{ID: "p2", Price: 4})

	left := s.RemoveOrdered(ctx, ordered)
	if len(left) != 2 || left[0].ID != "p1" || left[0].Quantity != 1 || left[1].ID != "p2" {
		t.Fatalf("expected the later p1 unit and p2 to remain, got %+v", left)
	}
	if !kv.Has(repository.KeyCart) {
		t.Fatalf("remaining lines must stay persisted")
	}

	s.RemoveOrdered(ctx, left)
	if len(s.Items()) != 0 || kv.Has(repository.KeyCart) {
		t.Fatalf("ordering everything empties the cart and its snapshot")
	}
}

func TestLoad_LenientSnapshot(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		repository.KeyCart: `[{"id":"p1","name":"Milk","price":"45.5","quantity":"abc"},{"id":7,"price":10,"quantity":3},{"name":"no id"}]`,
	})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	if items[0].Price != 45.5 || items[0].Quantity != 1 {
		t.Fatalf("expected coerced price and default quantity, got %+v", items[0])
	}
	if items[1].ID != "7" || items[1].Quantity != 3 {
		t.Fatalf("expected numeric id coerced, got %+v", items[1])
	}
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewKVRepository(brokenKV{}))

	if err := s.Load(ctx); err == nil {
		t.Fatalf("expected load error to be reported")
	}
	s.AddToCart(ctx, Product{ID: "p1", Price: 3})
	s.AddToCart(ctx, Product{ID: "p1", Price: 3})
	if s.GetCartItemsCount() != 2 {
		t.Fatalf("in-memory state must survive failed writes")
	}
	s.ClearCart(ctx)
	if len(s.Items()) != 0 {
		t.Fatalf("clear must succeed in memory")
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil)

	var seen [][]Item
	unsubscribe := s.Subscribe(func(items []Item) { seen = append(seen, items) })

	s.AddToCart(ctx, Product{ID: "p1"})
	s.AddToCart(ctx, Product{ID: "p1"})
	unsubscribe()
	s.ClearCart(ctx)

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[1][0].Quantity != 2 {
		t.Fatalf("expected snapshot with quantity 2, got %+v", seen[1])
	}
}
