package console_test_suite

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestLogin_ValidAdmin(t *testing.T) {
	_, r := newConsole(t)
	cookie := login(t, r, "admin", "admin123")

	w := get(r, "/", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from dashboard, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Welcome, admin!") {
		t.Errorf("dashboard should greet the logged-in user")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	_, r := newConsole(t)
	w := postForm(r, "/login", url.Values{
		"username": {"admin"},
		"password": {"nope"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Incorrect username or password") {
		t.Errorf("rejection should be surfaced inline, body: %s", w.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	_, r := newConsole(t)
	w := postForm(r, "/login", url.Values{"username": {"admin"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Password is required") {
		t.Errorf("expected inline field error, body: %s", w.Body.String())
	}
}

func TestLogout_GatedViewsBecomeInaccessible(t *testing.T) {
	_, r := newConsole(t)
	cookie := login(t, r, "admin", "admin123")

	w := postForm(r, "/logout", url.Values{}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected logout redirect, got %d", w.Code)
	}

	// the old cookie no longer restores a session
	w = get(r, "/products", cookie)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login after logout, got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestUnauthenticated_RedirectsToLogin(t *testing.T) {
	_, r := newConsole(t)
	for _, path := range []string{"/", "/products", "/reports"} {
		w := get(r, path)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Errorf("%s: expected redirect to /login, got %d -> %q", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestRegister_ThenLoginPrompt(t *testing.T) {
	backend, r := newConsole(t)
	w := postForm(r, "/register", url.Values{
		"username": {"newbie"},
		"email":    {"newbie@shop.test"},
		"password": {"secret123"},
		"role":     {"customer"},
	})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d -> %q", w.Code, w.Header().Get("Location"))
	}
	if backend.hitCount("register") != 1 {
		t.Errorf("expected one register call, got %d", backend.hitCount("register"))
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	_, r := newConsole(t)
	w := postForm(r, "/register", url.Values{
		"username": {"admin"},
		"email":    {"admin@shop.test"},
		"password": {"secret123"},
		"role":     {"admin"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Username already registered") {
		t.Errorf("backend detail should be surfaced, body: %s", w.Body.String())
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	backend, r := newConsole(t)
	w := postForm(r, "/register", url.Values{
		"username": {"newbie"},
		"email":    {"not-an-email"},
		"password": {"secret123"},
		"role":     {"customer"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email must be a valid address") {
		t.Errorf("expected inline email error, body: %s", w.Body.String())
	}
	if backend.hitCount("register") != 0 {
		t.Errorf("invalid form must not reach the backend")
	}
}
