// Package session implements the server-side session store that backs the
// HTTP-only session cookie. Sessions are keyed by an opaque random token;
// nothing about the user is derivable from the cookie value itself.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

// CookieName is the name of the session cookie set on login/signup.
const CookieName = "hall_session"

// ErrNotFound is returned when a token does not resolve to a live session,
// either because it never existed, was deleted on logout, or expired.
var ErrNotFound = errors.New("session not found")

// Session is the per-login state kept server side. Name and Email are
// duplicated from the user row so that every request does not need a user
// lookup; UpdateProfile refreshes the copy.
type Session struct {
	UserID uint64     `json:"user_id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

// Store is the persistence contract for sessions. Create mints a fresh token
// for the given session and returns it. Update rewrites the session stored
// under an existing token without extending a missing one. Delete is a no-op
// for unknown tokens.
type Store interface {
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, token string) (Session, error)
	Update(ctx context.Context, token string, s Session) error
	Delete(ctx context.Context, token string) error
	TTL() time.Duration
}
