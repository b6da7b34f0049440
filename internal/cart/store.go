package cart

import (
	"context"
	"log"
	"sync"
)

// Listener receives the cart contents after every change.
type Listener func(items []Item)

// Store owns the cart for the session. Every mutation replaces the whole
// list under the lock; the in-memory list stays authoritative even when
// persisting it fails.
type Store struct {
	mu        sync.Mutex
	items     []Item
	repo      Repository
	listeners map[int]Listener
	nextSub   int
}

func NewStore(repo Repository) *Store {
	return &Store{
		items:     []Item{},
		repo:      repo,
		listeners: make(map[int]Listener),
	}
}

// Load restores the persisted snapshot. A read failure leaves the cart empty.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		log.Println("[CART] [WARN] load failed:", err)
		return err
	}
	s.commit(func([]Item) []Item { return items }, nil)
	return nil
}

// Items returns a copy of the current cart.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// AddToCart increments the quantity of an existing line or appends a new
// one with quantity 1.
func (s *Store) AddToCart(ctx context.Context, p Product) []Item {
	return s.commit(func(old []Item) []Item {
		next := cloneItems(old)
		for i := range next {
			if next[i].ID == p.ID {
				next[i].Quantity++
				return next
			}
		}
		return append(next, newItem(p))
	}, s.save(ctx))
}

// RemoveFromCart drops the line with id. Unknown ids are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, id string) []Item {
	return s.commit(func(old []Item) []Item {
		next := make([]Item, 0, len(old))
		for _, it := range old {
			if it.ID != id {
				next = append(next, it)
			}
		}
		return next
	}, s.save(ctx))
}

// UpdateQuantity sets the quantity verbatim; zero or below removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) []Item {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, id)
	}
	return s.commit(func(old []Item) []Item {
		next := cloneItems(old)
		for i := range next {
			if next[i].ID == id {
				next[i].Quantity = quantity
			}
		}
		return next
	}, s.save(ctx))
}

// ClearCart empties the cart and deletes the persisted snapshot.
func (s *Store) ClearCart(ctx context.Context) {
	s.commit(func([]Item) []Item { return []Item{} }, func([]Item) {
		if err := s.repo.Clear(ctx); err != nil {
			log.Println("[CART] [WARN] clear snapshot failed:", err)
		}
	})
}

// RemoveOrdered takes the ordered lines out of the cart: each line loses the
// quantity that was ordered and disappears at zero. Lines added or raised
// while the order was in flight stay in the cart.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []Item) []Item {
	return s.commit(func(old []Item) []Item {
		taken := make(map[string]int, len(ordered))
		for _, it := range ordered {
			taken[it.ID] += it.Quantity
		}
		next := make([]Item, 0, len(old))
		for _, it := range old {
			it.Quantity -= taken[it.ID]
			if it.Quantity > 0 {
				next = append(next, it)
			}
		}
		return next
	}, func(items []Item) {
		var err error
		if len(items) == 0 {
			err = s.repo.Clear(ctx)
		} else {
			err = s.repo.Save(ctx, items)
		}
		if err != nil {
			log.Println("[CART] [WARN] persist after order failed:", err)
		}
	})
}

// Reset empties the in-memory cart without touching storage. Used on logout,
// after the session has already removed the persisted keys.
func (s *Store) Reset() {
	s.commit(func([]Item) []Item { return []Item{} }, nil)
}

// GetCartTotal is the unrounded sum of price × quantity.
func (s *Store) GetCartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// GetCartItemsCount is the sum of quantities, not the number of lines.
func (s *Store) GetCartItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) save(ctx context.Context) func([]Item) {
	return func(items []Item) {
		if err := s.repo.Save(ctx, items); err != nil {
			log.Println("[CART] [WARN] persist failed:", err)
		}
	}
}

// commit swaps in the list produced by mutate, persists it while still
// holding the lock so snapshots are written in order, then notifies
// listeners outside the lock.
func (s *Store) commit(mutate func(old []Item) []Item, persist func([]Item)) []Item {
	s.mu.Lock()
	s.items = mutate(s.items)
	snapshot := cloneItems(s.items)
	if persist != nil {
		persist(snapshot)
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneItems(snapshot))
	}
	return snapshot
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
