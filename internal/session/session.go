package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/models"
)

// Capability names an operation a session is allowed to perform. Handlers
// and templates consult capabilities instead of comparing role strings, so
// each role's surface is enumerable in one place.
type Capability string

const (
	CapBrowseCatalog  Capability = "browse-catalog"
	CapManageProducts Capability = "manage-products"
	CapViewReports    Capability = "view-reports"
	CapViewHistory    Capability = "view-history"
)

// Session is the authenticated identity plus the bearer credential for the
// backend. It lives server-side, keyed by ID through a cookie, and survives
// browser reloads until logout or expiry.
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// New builds a session for a fresh login. The lifetime is capped by the
// token's own expiry when the token carries one; the console has no signing
// key, so beyond that the credential is trusted until the backend rejects it.
func New(user models.User, token string, ttl time.Duration) Session {
	expires := time.Now().Add(ttl)
	if tokenExp, ok := TokenExpiry(token); ok && tokenExp.Before(expires) {
		expires = tokenExp
	}
	return Session{
		ID:        uuid.NewString(),
		User:      user,
		Token:     token,
		ExpiresAt: expires,
	}
}

// Capabilities enumerates what the session's role may do.
func (s Session) Capabilities() []Capability {
	switch s.User.Role {
	case models.RoleAdmin:
		return []Capability{CapBrowseCatalog, CapManageProducts, CapViewReports, CapViewHistory}
	default:
		return []Capability{CapBrowseCatalog}
	}
}

func (s Session) Can(c Capability) bool {
	for _, granted := range s.Capabilities() {
		if granted == c {
			return true
		}
	}
	return false
}

func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// ErrSessionNotFound is returned when no live session exists for an ID.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions across page loads. Implementations must treat an
// expired session as absent.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
