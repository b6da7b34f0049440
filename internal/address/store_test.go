package address

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/wichananm65/ride-shop-client/internal/domain/apperr"
	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
	"github.com/wichananm65/ride-shop-client/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

type fakeRemote struct {
	deleted    []string
	defaults   []string
	deleteErr  error
	defaultErr error
}

func (f *fakeRemote) DeleteAddress(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote) SetDefaultAddress(ctx context.Context, id string) error {
	if f.defaultErr != nil {
		return f.defaultErr
	}
	f.defaults = append(f.defaults, id)
	return nil
}

type fakeCreds bool

func (f fakeCreds) HasToken() bool { return bool(f) }

type fakeProfiles struct {
	p  user.Profile
	ok bool
}

func (f fakeProfiles) Profile() (user.Profile, bool) { return f.p, f.ok }

func newTestStore(seed map[string]string, remote *fakeRemote, signedIn bool, profiles ProfileSource) (*Store, *inmemory.KVStore) {
	kv := inmemory.NewKVStore(seed)
	s := NewStore(NewKVRepository(kv), remote, fakeCreds(signedIn), profiles)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, kv
}

func sample(name string, def bool) Address {
	return Address{
		Name: name, Phone: "9876543210", AddressLine1: "1 Main Road",
		City: "Pune", State: "Maharashtra", Pincode: "411001", IsDefault: def,
	}
}

func countDefaults(list []Address) int {
	n := 0
	for _, a := range list {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func snapshotOf(t *testing.T, kv *inmemory.KVStore) Address {
	t.Helper()
	raw, err := kv.Get(context.Background(), repository.KeyShippingAddress)
	if err != nil {
		t.Fatalf("expected shippingAddress snapshot: %v", err)
	}
	var a Address
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("bad snapshot: %v", err)
	}
	return a
}

func TestAddAddress_IDsAndSingleDefault(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil, &fakeRemote{}, false, nil)

	a, err := s.AddAddress(ctx, sample("Home", true))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := s.AddAddress(ctx, sample("Work", true))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("ids must be unique, both %s", a.ID)
	}
	if a.Country != DefaultCountry {
		t.Fatalf("expected country default, got %q", a.Country)
	}
	list := s.Addresses()
	if countDefaults(list) != 1 || !list[1].IsDefault {
		t.Fatalf("expected only the newest default, got %+v", list)
	}
	if snapshotOf(t, kv).ID != b.ID {
		t.Fatalf("snapshot should hold the new default")
	}
}

func TestAddAddress_Validation(t *testing.T) {
	s, _ := newTestStore(nil, &fakeRemote{}, false, nil)
	bad := sample("Home", false)
	bad.Pincode = "12"
	_, err := s.AddAddress(context.Background(), bad)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	bad = sample("", false)
	if _, err := s.AddAddress(context.Background(), bad); apperr.UserMessage(err) != "name is required" {
		t.Fatalf("expected name is required, got %v", err)
	}
	if len(s.Addresses()) != 0 {
		t.Fatalf("invalid address must not be stored")
	}
}

func TestUpdateAddress_UsesPatchedEntry(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil, &fakeRemote{}, false, nil)
	home, _ := s.AddAddress(ctx, sample("Home", true))
	work, _ := s.AddAddress(ctx, sample("Work", false))

	def := true
	city := "Mumbai"
	got, err := s.UpdateAddress(ctx, work.ID, Patch{IsDefault: &def, City: &city})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.City != "Mumbai" || !got.IsDefault {
		t.Fatalf("unexpected merge %+v", got)
	}
	list := s.Addresses()
	if countDefaults(list) != 1 || list[0].ID != home.ID || list[0].IsDefault {
		t.Fatalf("expected home demoted, got %+v", list)
	}
	snap := snapshotOf(t, kv)
	if snap.ID != work.ID || snap.City != "Mumbai" {
		t.Fatalf("snapshot should be the post-patch entry, got %+v", snap)
	}

	if _, err := s.UpdateAddress(ctx, "missing", Patch{City: &city}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	empty := ""
	if _, err := s.UpdateAddress(ctx, work.ID, Patch{Phone: &empty}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateAddress_ClearingDefaultPromotesAnother(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil, &fakeRemote{}, false, nil)
	home, _ := s.AddAddress(ctx, sample("Home", true))
	work, _ := s.AddAddress(ctx, sample("Work", false))

	off := false
	got, err := s.UpdateAddress(ctx, home.ID, Patch{IsDefault: &off})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.IsDefault {
		t.Fatalf("patched entry should no longer be default")
	}
	list := s.Addresses()
	if countDefaults(list) != 1 || !list[1].IsDefault {
		t.Fatalf("expected work promoted, got %+v", list)
	}
	if snap := snapshotOf(t, kv); snap.ID != work.ID || !snap.IsDefault {
		t.Fatalf("snapshot must hold the promoted default, got %+v", snap)
	}

	// a single address keeps the default whatever the patch says
	solo, kv2 := newTestStore(nil, &fakeRemote{}, false, nil)
	only, _ := solo.AddAddress(ctx, sample("Only", true))
	got, _ = solo.UpdateAddress(ctx, only.ID, Patch{IsDefault: &off})
	if !got.IsDefault || !snapshotOf(t, kv2).IsDefault {
		t.Fatalf("the only address must stay default, got %+v", got)
	}
}

func TestDeleteAddress_LastAddressRefused(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	s, _ := newTestStore(nil, remote, true, nil)
	only, _ := s.AddAddress(ctx, sample("Home", true))

	if err := s.DeleteAddress(ctx, only.ID); !errors.Is(err, ErrLastAddress) {
		t.Fatalf("expected ErrLastAddress, got %v", err)
	}
	if len(s.Addresses()) != 1 || len(remote.deleted) != 0 {
		t.Fatalf("list and backend must be untouched")
	}
}

func TestDeleteAddress_PromotesNextDefault(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	s, kv := newTestStore(nil, remote, true, nil)
	home, _ := s.AddAddress(ctx, sample("Home", true))
	work, _ := s.AddAddress(ctx, sample("Work", false))

	if err := s.DeleteAddress(ctx, home.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list := s.Addresses()
	if len(list) != 1 || list[0].ID != work.ID || !list[0].IsDefault {
		t.Fatalf("expected work promoted, got %+v", list)
	}
	if len(remote.deleted) != 1 || remote.deleted[0] != home.ID {
		t.Fatalf("expected remote delete of %s, got %v", home.ID, remote.deleted)
	}
	if snapshotOf(t, kv).ID != work.ID {
		t.Fatalf("snapshot should follow the promoted default")
	}
}

func TestDeleteAddress_RemoteFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{deleteErr: apperr.Network(errors.New("dial tcp: refused"))}
	s, _ := newTestStore(nil, remote, true, nil)
	home, _ := s.AddAddress(ctx, sample("Home", true))
	s.AddAddress(ctx, sample("Work", false))

	err := s.DeleteAddress(ctx, home.ID)
	if !apperr.Is(err, apperr.KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if len(s.Addresses()) != 2 {
		t.Fatalf("list must be unchanged")
	}
}

func TestDeleteAddress_SignedOutSkipsRemote(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	s, _ := newTestStore(nil, remote, false, nil)
	s.AddAddress(ctx, sample("Home", true))
	work, _ := s.AddAddress(ctx, sample("Work", false))

	if err := s.DeleteAddress(ctx, work.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(remote.deleted) != 0 {
		t.Fatalf("no remote call expected without a token")
	}
}

func TestSetDefaultAddress(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	s, kv := newTestStore(nil, remote, true, nil)
	s.AddAddress(ctx, sample("Home", true))
	work, _ := s.AddAddress(ctx, sample("Work", false))

	if _, err := s.SetDefaultAddress(ctx, work.ID); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if d := s.DefaultAddress(); d == nil || d.ID != work.ID {
		t.Fatalf("expected work default, got %+v", d)
	}
	if countDefaults(s.Addresses()) != 1 {
		t.Fatalf("exactly one default expected")
	}
	if snapshotOf(t, kv).ID != work.ID {
		t.Fatalf("snapshot should be rewritten")
	}

	remote.defaultErr = apperr.Business(500, "")
	home := s.Addresses()[0]
	if _, err := s.SetDefaultAddress(ctx, home.ID); err == nil {
		t.Fatalf("expected remote error")
	}
	if d := s.DefaultAddress(); d.ID != work.ID {
		t.Fatalf("remote failure must leave default unchanged, got %s", d.ID)
	}
}

func TestDefaultAddress_FallsBackToFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil, &fakeRemote{}, false, nil)
	if s.DefaultAddress() != nil {
		t.Fatalf("empty store has no default")
	}
	first, _ := s.AddAddress(ctx, sample("Home", false))
	s.AddAddress(ctx, sample("Work", false))
	if d := s.DefaultAddress(); d == nil || d.ID != first.ID {
		t.Fatalf("expected first address, got %+v", d)
	}
}

func TestFetchUserProfileForAddress_FromProfile(t *testing.T) {
	ctx := context.Background()
	profiles := fakeProfiles{ok: true, p: user.Profile{Name: "Asha", Phone: "98450", Address: "5 Lake View, Chennai, Tamil Nadu 600001"}}
	s, kv := newTestStore(nil, &fakeRemote{}, false, profiles)

	list, err := s.FetchUserProfileForAddress(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one synthesized address, got %+v", list)
	}
	a := list[0]
	if !a.IsDefault || a.City != "Chennai" || a.State != "Tamil Nadu" || a.Pincode != "600001" || a.Name != "Asha" {
		t.Fatalf("unexpected synthesized address %+v", a)
	}
	if snapshotOf(t, kv).ID != a.ID {
		t.Fatalf("synthesized address should be persisted")
	}

	// second call leaves a populated store alone
	again, _ := s.FetchUserProfileForAddress(ctx)
	if len(again) != 1 || again[0].ID != a.ID {
		t.Fatalf("expected the same list, got %+v", again)
	}
}

func TestFetchUserProfileForAddress_PrefersSnapshot(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		repository.KeyShippingAddress: `{"id":"17","name":"Saved","phone":"1","addressLine1":"x","city":"Goa","state":"Goa","pincode":"403001","country":"India"}`,
	}, &fakeRemote{}, false, fakeProfiles{ok: true, p: user.Profile{Address: "Elsewhere, Pune, Maharashtra"}})

	list, err := s.FetchUserProfileForAddress(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(list) != 1 || list[0].ID != "17" || !list[0].IsDefault {
		t.Fatalf("expected snapshot seed, got %+v", list)
	}
}

func TestFetchUserProfileForAddress_NoProfile(t *testing.T) {
	s, _ := newTestStore(nil, &fakeRemote{}, false, fakeProfiles{})
	list, err := s.FetchUserProfileForAddress(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %+v %v", list, err)
	}
}

func TestSubscribeAndReset(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(nil, &fakeRemote{}, false, nil)
	var seen []int
	unsubscribe := s.Subscribe(func(list []Address) { seen = append(seen, len(list)) })

	s.AddAddress(ctx, sample("Home", true))
	s.Reset()
	unsubscribe()
	s.AddAddress(ctx, sample("Work", true))

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 0 {
		t.Fatalf("unexpected notifications %v", seen)
	}
}
