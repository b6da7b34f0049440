package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user profile not found")
	ErrNotSignedIn    = errors.New("not signed in")
	ErrEmptyPatch     = errors.New("no profile fields to update")
	ErrMissingToken   = errors.New("token is required")
	ErrMissingSession = errors.New("session secret is not configured")
)

// Remote is the backend side of profile management.
type Remote interface {
	UpdateProfile(ctx context.Context, p Profile) (Profile, error)
	DeleteAccount(ctx context.Context) error
}
