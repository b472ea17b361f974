package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopfront/internal/models"
)

var ctx = context.Background()

func TestMemoryStore_Roundtrip(t *testing.T) {
	store := NewMemoryStore()
	user := models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	sess := New(user, "opaque-token", time.Hour)

	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	restored, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if restored.User != user {
		t.Errorf("restored user %+v differs from stored %+v", restored.User, user)
	}
	if restored.Token != "opaque-token" {
		t.Errorf("restored token %q differs", restored.Token)
	}
}

func TestMemoryStore_DeleteMeansGone(t *testing.T) {
	store := NewMemoryStore()
	sess := New(models.User{Username: "carol", Role: models.RoleCustomer}, "tok", time.Hour)
	store.Create(ctx, sess)

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_ExpiredSessionIsAbsent(t *testing.T) {
	store := NewMemoryStore()
	sess := New(models.User{Username: "carol"}, "tok", time.Hour)
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	store.Create(ctx, sess)

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected expired session to be treated as absent, got %v", err)
	}
}

func TestNew_TokenExpiryCapsLifetime(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("not-our-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	sess := New(models.User{Username: "admin"}, signed, 12*time.Hour)
	if sess.ExpiresAt.After(exp.Add(time.Second)) {
		t.Errorf("session expiry %v should not outlive the token expiry %v", sess.ExpiresAt, exp)
	}
}

func TestNew_OpaqueTokenUsesConfiguredTTL(t *testing.T) {
	sess := New(models.User{Username: "admin"}, "not-a-jwt", time.Hour)
	if remaining := time.Until(sess.ExpiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("expected about an hour of lifetime, got %v", remaining)
	}
}

func TestCapabilities(t *testing.T) {
	admin := Session{User: models.User{Role: models.RoleAdmin}}
	customer := Session{User: models.User{Role: models.RoleCustomer}}

	for _, c := range []Capability{CapBrowseCatalog, CapManageProducts, CapViewReports, CapViewHistory} {
		if !admin.Can(c) {
			t.Errorf("admin should have %q", c)
		}
	}

	if !customer.Can(CapBrowseCatalog) {
		t.Error("customer should be able to browse the catalog")
	}
	for _, c := range []Capability{CapManageProducts, CapViewReports, CapViewHistory} {
		if customer.Can(c) {
			t.Errorf("customer must not have %q", c)
		}
	}
}
