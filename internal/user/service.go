package user

import (
	"context"
	"time"
)

// Service handles profile changes that must reach the backend first.
type Service struct {
	session *Session
	remote  Remote
}

func NewService(session *Session, remote Remote) *Service {
	return &Service{session: session, remote: remote}
}

func (s *Service) Session() *Session {
	return s.session
}

func (s *Service) GetProfile() (Profile, error) {
	p, ok := s.session.Profile()
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

// UpdateProfile sends the merged profile to the backend and caches the
// server's copy.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	if patch.empty() {
		return Profile{}, ErrEmptyPatch
	}
	current, err := s.GetProfile()
	if err != nil {
		return Profile{}, err
	}

	next := patch.apply(current)
	next.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := s.remote.UpdateProfile(ctx, next)
	if err != nil {
		return Profile{}, err
	}
	// keep identifiers when the backend echoes a partial profile
	if updated.ID == "" {
		updated.ID = current.ID
	}
	if updated.CustomerID == "" {
		updated.CustomerID = current.CustomerID
	}
	if err := s.session.SaveProfile(ctx, updated); err != nil {
		return Profile{}, err
	}
	return updated, nil
}

// DeleteAccount removes the account remotely, then signs out locally.
func (s *Service) DeleteAccount(ctx context.Context) error {
	if err := s.remote.DeleteAccount(ctx); err != nil {
		return err
	}
	return s.session.Logout(ctx)
}
