package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/internal/api"
	"shopfront/internal/models"
)

var ctx = context.Background()

func newClient(srv *httptest.Server) *api.Client {
	return api.NewClient(srv.URL, 5*time.Second)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer srv.Close()

	if _, err := newClient(srv).WithToken("tok-123").Products(ctx, api.ProductQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_LoginSendsNoToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(api.LoginResult{
			AccessToken: "fresh-token",
			TokenType:   "bearer",
			User:        models.User{ID: 1, Username: "admin", Role: models.RoleAdmin},
		})
	}))
	defer srv.Close()

	result, err := newClient(srv).Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("login must not carry a credential, got %q", gotAuth)
	}
	if result.AccessToken != "fresh-token" || result.User.Username != "admin" {
		t.Errorf("unexpected login result: %+v", result)
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer srv.Close()

	minPrice, maxPrice := 1.5, 20.0
	_, err := newClient(srv).Products(ctx, api.ProductQuery{
		Search:   "widget",
		Category: "Hardware",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "category=Hardware&max_price=20&min_price=1.5&search=widget"
	if got != want {
		t.Errorf("expected query %q, got %q", want, got)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		detail     string
		sentinel   error
		validation bool
	}{
		{"unauthorized", http.StatusUnauthorized, "Could not validate credentials", api.ErrUnauthorized, false},
		{"forbidden", http.StatusForbidden, "Admin access required", api.ErrForbidden, false},
		{"not found", http.StatusNotFound, "Product not found", api.ErrNotFound, false},
		{"validation", http.StatusUnprocessableEntity, "price must be positive", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"detail": tt.detail})
			}))
			defer srv.Close()

			_, err := newClient(srv).WithToken("tok").Product(ctx, 7)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("expected errors.Is(%v), got %v", tt.sentinel, err)
			}
			if got := api.IsValidation(err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if api.Detail(err) != tt.detail {
				t.Errorf("expected detail %q, got %q", tt.detail, api.Detail(err))
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newClient(srv).WithToken("tok").Products(ctx, api.ProductQuery{})
	if err == nil {
		t.Fatal("expected a transport error")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure must not look like a backend rejection: %v", err)
	}
}

func TestClient_DeleteProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/products/3" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.DeleteResult{Message: "Product deleted successfully"})
	}))
	defer srv.Close()

	if err := newClient(srv).WithToken("tok").DeleteProduct(ctx, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
