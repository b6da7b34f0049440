package address

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Listener receives the address list after every change.
type Listener func(addresses []Address)

// Store owns the saved addresses for the session. Writers are serialized by
// opMu so remote calls and the local update they guard act as one step;
// readers only take mu and never wait on the network.
type Store struct {
	opMu sync.Mutex

	mu        sync.Mutex
	addresses []Address
	lastID    int64
	listeners map[int]Listener
	nextSub   int

	repo     SnapshotRepository
	remote   Remote
	creds    Credentials
	profiles ProfileSource
	now      func() time.Time
}

func NewStore(repo SnapshotRepository, remote Remote, creds Credentials, profiles ProfileSource) *Store {
	return &Store{
		addresses: []Address{},
		listeners: make(map[int]Listener),
		repo:      repo,
		remote:    remote,
		creds:     creds,
		profiles:  profiles,
		now:       time.Now,
	}
}

// Addresses returns a copy of the saved addresses.
func (s *Store) Addresses() []Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAddresses(s.addresses)
}

// DefaultAddress returns the first default address, else the first address,
// else nil.
func (s *Store) DefaultAddress() *Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return defaultOf(s.addresses)
}

func defaultOf(list []Address) *Address {
	for _, a := range list {
		if a.IsDefault {
			out := a
			return &out
		}
	}
	if len(list) > 0 {
		out := list[0]
		return &out
	}
	return nil
}

// FetchUserProfileForAddress seeds an empty store, first from the persisted
// shippingAddress snapshot and otherwise from the cached profile's free-text
// address. A populated store is returned untouched.
func (s *Store) FetchUserProfileForAddress(ctx context.Context) ([]Address, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if list := s.Addresses(); len(list) > 0 {
		return list, nil
	}

	snap, err := s.repo.LoadDefault(ctx)
	if err != nil {
		log.Println("[ADDRESS] [WARN] load snapshot failed:", err)
	}
	if snap != nil {
		seed := *snap
		seed.IsDefault = true
		if seed.ID == "" {
			seed.ID = s.nextID()
		}
		return s.commit(func([]Address) []Address { return []Address{seed} }), nil
	}

	if s.profiles == nil {
		return []Address{}, nil
	}
	p, ok := s.profiles.Profile()
	if !ok || strings.TrimSpace(p.Address) == "" {
		return []Address{}, nil
	}

	parsed := ParseFreeText(p.Address)
	seed := Address{
		ID:           s.nextID(),
		Name:         strings.TrimSpace(p.Name),
		Phone:        strings.TrimSpace(p.Phone),
		AddressLine1: strings.TrimSpace(p.Address),
		City:         parsed.City,
		State:        parsed.State,
		Pincode:      parsed.Pincode,
		Country:      DefaultCountry,
		IsDefault:    true,
	}
	out := s.commit(func([]Address) []Address { return []Address{seed} })
	s.persist(ctx, seed)
	return out, nil
}

// AddAddress validates a, assigns an id and appends it. A new default clears
// every other default and rewrites the snapshot.
func (s *Store) AddAddress(ctx context.Context, a Address) (Address, error) {
	a = a.normalized()
	if err := Validate(a); err != nil {
		return Address{}, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	a.ID = s.nextID()
	s.commit(func(old []Address) []Address {
		next := cloneAddresses(old)
		if a.IsDefault {
			clearDefaults(next)
		}
		return append(next, a)
	})
	if a.IsDefault {
		s.persist(ctx, a)
	}
	return a, nil
}

// UpdateAddress merges patch into the address with id. When the result is
// the default, every other default is cleared and the snapshot is rewritten
// from the merged entry.
func (s *Store) UpdateAddress(ctx context.Context, id string, patch Patch) (Address, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	list := s.Addresses()
	idx := indexOf(list, id)
	if idx < 0 {
		return Address{}, ErrNotFound
	}
	wasDefault := list[idx].IsDefault
	merged := patch.apply(list[idx]).normalized()
	merged.ID = id
	if err := Validate(merged); err != nil {
		return Address{}, err
	}

	out := s.commit(func(old []Address) []Address {
		next := cloneAddresses(old)
		if merged.IsDefault {
			clearDefaults(next)
		}
		next[idx] = merged
		if wasDefault && !merged.IsDefault {
			// the book always keeps one default
			next[promotionIndex(next, idx)].IsDefault = true
		}
		return next
	})
	updated := out[idx]
	if d := defaultOf(out); d != nil && (updated.IsDefault || wasDefault) {
		s.persist(ctx, *d)
	}
	return updated, nil
}

// promotionIndex picks the entry that inherits the default from the one at
// idx: the first other address, or idx itself when it is alone.
func promotionIndex(list []Address, idx int) int {
	for i := range list {
		if i != idx {
			return i
		}
	}
	return idx
}

// DeleteAddress removes the address with id. The last remaining address
// cannot be deleted. When signed in the backend is asked first and a
// failure there leaves the list unchanged.
func (s *Store) DeleteAddress(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	list := s.Addresses()
	if len(list) <= 1 {
		if indexOf(list, id) < 0 {
			return ErrNotFound
		}
		return ErrLastAddress
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return ErrNotFound
	}

	if s.signedIn() {
		if err := s.remote.DeleteAddress(ctx, id); err != nil {
			log.Printf("[ADDRESS] [ERROR] remote delete %s failed: %v", id, err)
			return err
		}
	}

	removedDefault := list[idx].IsDefault
	out := s.commit(func(old []Address) []Address {
		next := make([]Address, 0, len(old))
		for _, a := range old {
			if a.ID != id {
				next = append(next, a)
			}
		}
		if removedDefault && len(next) > 0 {
			next[0].IsDefault = true
		}
		return next
	})
	if removedDefault && len(out) > 0 {
		s.persist(ctx, out[0])
	}
	return nil
}

// SetDefaultAddress marks id as the only default. When signed in the
// backend is updated first; a remote failure leaves local state unchanged.
func (s *Store) SetDefaultAddress(ctx context.Context, id string) (Address, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if indexOf(s.Addresses(), id) < 0 {
		return Address{}, ErrNotFound
	}
	if s.signedIn() {
		if err := s.remote.SetDefaultAddress(ctx, id); err != nil {
			log.Printf("[ADDRESS] [ERROR] remote set-default %s failed: %v", id, err)
			return Address{}, err
		}
	}

	out := s.commit(func(old []Address) []Address {
		next := cloneAddresses(old)
		for i := range next {
			next[i].IsDefault = next[i].ID == id
		}
		return next
	})
	d := out[indexOf(out, id)]
	s.persist(ctx, d)
	return d, nil
}

// Reset drops every address from memory. Storage is handled by logout.
func (s *Store) Reset() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.commit(func([]Address) []Address { return []Address{} })
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

func (s *Store) signedIn() bool {
	return s.remote != nil && s.creds != nil && s.creds.HasToken()
}

func (s *Store) persist(ctx context.Context, a Address) {
	if err := s.repo.SaveDefault(ctx, a); err != nil {
		log.Println("[ADDRESS] [WARN] persist snapshot failed:", err)
	}
}

// nextID returns a millisecond timestamp id, bumped past the last one issued
// so ids stay unique within the store.
func (s *Store) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for indexOf(s.addresses, strconv.FormatInt(id, 10)) >= 0 {
		id++
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *Store) commit(mutate func(old []Address) []Address) []Address {
	s.mu.Lock()
	s.addresses = mutate(s.addresses)
	snapshot := cloneAddresses(s.addresses)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneAddresses(snapshot))
	}
	return snapshot
}

func clearDefaults(list []Address) {
	for i := range list {
		list[i].IsDefault = false
	}
}

func indexOf(list []Address, id string) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAddresses(list []Address) []Address {
	out := make([]Address, len(list))
	copy(out, list)
	return out
}
