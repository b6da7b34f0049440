package user

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
	"github.com/wichananm65/ride-shop-client/internal/infrastructure/database/inmemory"
)

func TestLoadSession_TokenFallbackOrder(t *testing.T) {
	ctx := context.Background()

	kv := inmemory.NewKVStore(map[string]string{
		repository.KeyAuthToken: "auth-token",
		repository.KeyToken:     "plain-token",
	})
	s, err := LoadSession(ctx, kv)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Token() != "auth-token" {
		t.Fatalf("expected authToken to win over token, got %q", s.Token())
	}

	kv2 := inmemory.NewKVStore(map[string]string{
		repository.KeyUserToken: `"user-token"`,
		repository.KeyAuthToken: "auth-token",
	})
	s2, _ := LoadSession(ctx, kv2)
	if s2.Token() != "user-token" {
		t.Fatalf("expected userToken first and JSON quotes stripped, got %q", s2.Token())
	}

	s3, _ := LoadSession(ctx, inmemory.NewKVStore(nil))
	if s3.HasToken() {
		t.Fatalf("expected no token")
	}
}

func TestLoadSession_Profile(t *testing.T) {
	kv := inmemory.NewKVStore(map[string]string{
		repository.KeyUserProfile: `{"id":"u1","customerId":"c-9","name":"Asha","address":"12 MG Road, Pune, Maharashtra 411001"}`,
	})
	s, err := LoadSession(context.Background(), kv)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	p, ok := s.Profile()
	if !ok || p.Name != "Asha" {
		t.Fatalf("expected cached profile, got %+v", p)
	}
	if s.CustomerID() != "c-9" {
		t.Fatalf("expected customerId to win, got %q", s.CustomerID())
	}
}

func TestSession_CustomerIDFromTokenClaims(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "from-claims"}).SignedString([]byte("backend"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	s, _ := LoadSession(context.Background(), inmemory.NewKVStore(map[string]string{repository.KeyToken: raw}))
	if s.CustomerID() != "from-claims" {
		t.Fatalf("expected id from token claims, got %q", s.CustomerID())
	}
}

func TestSession_LogoutClearsEveryKey(t *testing.T) {
	ctx := context.Background()
	seed := map[string]string{}
	for _, k := range repository.SessionKeys {
		seed[k] = "x"
	}
	kv := inmemory.NewKVStore(seed)
	s, _ := LoadSession(ctx, kv)

	hookRan := false
	s.OnLogout(func(context.Context) { hookRan = true })

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	for _, k := range repository.SessionKeys {
		if kv.Has(k) {
			t.Fatalf("key %s survived logout", k)
		}
	}
	if s.HasToken() || !hookRan {
		t.Fatalf("expected token reset and hook run")
	}
}

func TestSession_SignInAndIssueLocalToken(t *testing.T) {
	ctx := context.Background()
	kv := inmemory.NewKVStore(nil)
	s, _ := LoadSession(ctx, kv)

	if _, err := s.IssueLocalToken([]byte("secret"), time.Hour); err != ErrNotSignedIn {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if err := s.SignIn(ctx, "Bearer backend", Profile{CustomerID: "c-1", Name: "Ravi"}); err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if v, _ := kv.Get(ctx, repository.KeyUserToken); v != "backend" {
		t.Fatalf("expected normalized token persisted, got %q", v)
	}

	local, err := s.IssueLocalToken([]byte("secret"), time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	tok, err := jwt.Parse(local, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	if err != nil || !tok.Valid {
		t.Fatalf("local token invalid: %v", err)
	}
	if tok.Claims.(jwt.MapClaims)["customer_id"] != "c-1" {
		t.Fatalf("unexpected claims %v", tok.Claims)
	}
}

func TestSession_SignInAsAnotherCustomerResetsState(t *testing.T) {
	ctx := context.Background()
	kv := inmemory.NewKVStore(nil)
	s, _ := LoadSession(ctx, kv)

	resets := 0
	s.OnLogout(func(context.Context) { resets++ })

	if err := s.SignIn(ctx, "token-a", Profile{CustomerID: "A", Name: "Alice"}); err != nil {
		t.Fatalf("sign in A: %v", err)
	}
	kv.Set(ctx, repository.KeyCart, `[{"id":"p1","quantity":1}]`)
	kv.Set(ctx, repository.KeyShippingAddress, `{"id":"1","city":"Pune"}`)

	// refreshing the same customer keeps the session state
	if err := s.SignIn(ctx, "token-a2", Profile{CustomerID: "A", Name: "Alice"}); err != nil {
		t.Fatalf("re-sign in A: %v", err)
	}
	if resets != 0 || !kv.Has(repository.KeyCart) {
		t.Fatalf("same customer must keep its state, resets=%d", resets)
	}

	if err := s.SignIn(ctx, "token-b", Profile{CustomerID: "B", Name: "Bob"}); err != nil {
		t.Fatalf("sign in B: %v", err)
	}
	if resets != 1 {
		t.Fatalf("expected the stores to be reset once, got %d", resets)
	}
	if kv.Has(repository.KeyCart) || kv.Has(repository.KeyShippingAddress) {
		t.Fatalf("previous customer's cart and address must be removed")
	}
	if s.CustomerID() != "B" || s.Token() != "token-b" {
		t.Fatalf("expected B signed in, got %q/%q", s.CustomerID(), s.Token())
	}
	if v, _ := kv.Get(ctx, repository.KeyUserToken); v != "token-b" {
		t.Fatalf("new token must be persisted after the reset, got %q", v)
	}
}
