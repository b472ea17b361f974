package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"shopfront/internal/api"
	"shopfront/internal/session"
)

var (
	apiClient    *api.Client
	sessionStore session.Store
	logger       zerolog.Logger

	cookieName = "shop_session"
	sessionTTL = 12 * time.Hour
)

func SetAPIClient(c *api.Client) {
	apiClient = c
}

func SetSessionStore(s session.Store) {
	sessionStore = s
}

func SetLogger(l zerolog.Logger) {
	logger = l
}

func SetSessionOptions(name string, ttl time.Duration) {
	if name != "" {
		cookieName = name
	}
	if ttl > 0 {
		sessionTTL = ttl
	}
}

type contextKey string

const sessionKey = contextKey("session")

// SessionFromRequest returns the session placed in the context by
// RequireSession.
func SessionFromRequest(r *http.Request) (session.Session, bool) {
	s, ok := r.Context().Value(sessionKey).(session.Session)
	return s, ok
}

func withSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// backendFor returns an API client carrying the session's bearer token.
func backendFor(s session.Session) *api.Client {
	return apiClient.WithToken(s.Token)
}

func setSessionCookie(w http.ResponseWriter, s session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

const flashCookie = "shop_flash"

// setFlash queues a one-shot message for the next rendered page.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

func takeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

// endSession drops the server-side session and the cookie. Used by logout
// and whenever the backend rejects the stored credential.
func endSession(w http.ResponseWriter, r *http.Request) {
	if s, ok := SessionFromRequest(r); ok {
		if err := sessionStore.Delete(r.Context(), s.ID); err != nil {
			logger.Warn().Err(err).Msg("failed to delete session")
		}
	}
	clearSessionCookie(w)
}

// redirectIfUnauthorized handles a backend authorization failure by tearing
// down the session and sending the user back to the login view. Returns true
// when the response has been written.
func redirectIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	endSession(w, r)
	setFlash(w, "Your session has expired. Please login again.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}
