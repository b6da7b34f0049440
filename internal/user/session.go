package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
)

// Session is the single source of truth for the current credential and the
// cached profile. The credential is resolved once, when the session loads.
type Session struct {
	mu       sync.RWMutex
	kv       repository.KeyValueStore
	token    string
	profile  *Profile
	onLogout []func(ctx context.Context)
}

// LoadSession reads the persisted credential (userToken, then authToken,
// then token) and the cached profile.
func LoadSession(ctx context.Context, kv repository.KeyValueStore) (*Session, error) {
	s := &Session{kv: kv}

	for _, key := range repository.TokenKeys {
		v, err := kv.Get(ctx, key)
		if errors.Is(err, repository.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if v = normalizeToken(v); v != "" {
			s.token = v
			break
		}
	}

	raw, err := kv.Get(ctx, repository.KeyUserProfile)
	switch {
	case errors.Is(err, repository.ErrKeyNotFound):
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	default:
		var p Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			log.Println("[SESSION] [WARN] cached profile unreadable:", err)
		} else {
			s.profile = &p
		}
	}

	return s, nil
}

// tokens are sometimes persisted JSON-encoded ("\"abc\"")
func normalizeToken(v string) string {
	v = strings.TrimSpace(v)
	var decoded string
	if strings.HasPrefix(v, `"`) && json.Unmarshal([]byte(v), &decoded) == nil {
		v = strings.TrimSpace(decoded)
	}
	v = strings.TrimPrefix(v, "Bearer ")
	return v
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) HasToken() bool {
	return s.Token() != ""
}

func (s *Session) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// CustomerID resolves the order customer identifier from the profile, then
// from the claims of the backend token. Empty when neither carries one.
func (s *Session) CustomerID() string {
	if p, ok := s.Profile(); ok {
		if id := p.Identifier(); id != "" {
			return id
		}
	}
	return customerIDFromToken(s.Token())
}

func customerIDFromToken(raw string) string {
	if raw == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return ""
	}
	for _, k := range []string{"customerId", "userId", "user_id", "id", "sub"} {
		switch v := claims[k].(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// SignIn stores the backend credential and profile for this session. Signing
// in as another customer tears the current session down first.
func (s *Session) SignIn(ctx context.Context, token string, p Profile) error {
	token = normalizeToken(token)
	if token == "" {
		return ErrMissingToken
	}

	next := p.Identifier()
	if next == "" {
		next = customerIDFromToken(token)
	}
	// a different customer must not inherit the previous cart or addresses
	if prev := s.CustomerID(); prev != "" && prev != next {
		log.Println("[SESSION] [INFO] customer changed, clearing the previous session")
		if err := s.Logout(ctx); err != nil {
			return err
		}
	}

	if err := s.kv.Set(ctx, repository.KeyUserToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.SaveProfile(ctx, p)
}

// SaveProfile replaces the cached profile in memory and storage.
func (s *Session) SaveProfile(ctx context.Context, p Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()

	if err := s.kv.Set(ctx, repository.KeyUserProfile, string(b)); err != nil {
		log.Println("[SESSION] [WARN] persist profile failed:", err)
	}
	return nil
}

// OnLogout registers a hook run after the persisted keys are cleared.
func (s *Session) OnLogout(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Logout tears down the session: every persisted key is removed and the
// registered state owners reset themselves.
func (s *Session) Logout(ctx context.Context) error {
	err := s.kv.Remove(ctx, repository.SessionKeys...)

	s.mu.Lock()
	s.token = ""
	s.profile = nil
	hooks := append([]func(context.Context){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(ctx)
	}
	if err != nil {
		return fmt.Errorf("clear session keys: %w", err)
	}
	log.Println("[SESSION] [INFO] signed out")
	return nil
}

// IssueLocalToken signs the token the UI shell presents to this agent.
func (s *Session) IssueLocalToken(secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSession
	}
	customerID := s.CustomerID()
	if customerID == "" {
		return "", ErrNotSignedIn
	}
	claims := jwt.MapClaims{
		"customer_id": customerID,
		"exp":         time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
