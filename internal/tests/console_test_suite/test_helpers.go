package console_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"shopfront/internal/api"
	"shopfront/internal/models"
	"shopfront/internal/session"
	"shopfront/internal/web"
	"shopfront/internal/web/handlers"
)

const (
	adminToken    = "admin-token"
	customerToken = "customer-token"
)

// fakeBackend is an in-memory stand-in for the wholesale inventory REST API.
// It records how often each endpoint was hit so tests can assert which data
// path a view took.
type fakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	products []models.Product
	nextID   int
	hits     map[string]int
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{
		products: []models.Product{
			{ID: 1, SKU: "WID-001", Name: "Widget", Category: "Hardware", Price: 10.00, Quantity: 3, MinStockLevel: 10, Supplier: "Acme"},
			{ID: 2, SKU: "GAD-002", Name: "Gadget", Category: "Hardware", Price: 5.50, Quantity: 2, MinStockLevel: 10},
			{ID: 3, SKU: "SPR-003", Name: "Sprocket", Category: "Parts", Price: 99.00, Quantity: 50, MinStockLevel: 10},
		},
		nextID: 4,
		hits:   map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", fb.login)
	mux.HandleFunc("POST /auth/register", fb.register)
	mux.HandleFunc("GET /products", fb.listProducts)
	mux.HandleFunc("GET /products/categories", fb.categories)
	mux.HandleFunc("GET /products/{id}", fb.getProduct)
	mux.HandleFunc("POST /products", fb.createProduct)
	mux.HandleFunc("PUT /products/{id}", fb.updateProduct)
	mux.HandleFunc("DELETE /products/{id}", fb.deleteProduct)
	mux.HandleFunc("GET /products/{id}/history", fb.history)
	mux.HandleFunc("GET /reports/stats", fb.stats)
	mux.HandleFunc("GET /reports/low-stock", fb.lowStock)
	mux.HandleFunc("GET /reports/category-stats", fb.categoryStats)
	mux.HandleFunc("GET /reports/recent-activity", fb.recentActivity)

	fb.Server = httptest.NewServer(mux)
	return fb
}

func (fb *fakeBackend) hit(name string) {
	fb.mu.Lock()
	fb.hits[name]++
	fb.mu.Unlock()
}

func (fb *fakeBackend) hitCount(name string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[name]
}

func (fb *fakeBackend) productCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.products)
}

func detail(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}

// role resolves the bearer token, writing a 401 when it is missing or bogus.
func (fb *fakeBackend) role(w http.ResponseWriter, r *http.Request) (models.Role, bool) {
	switch strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") {
	case adminToken:
		return models.RoleAdmin, true
	case customerToken:
		return models.RoleCustomer, true
	}
	detail(w, http.StatusUnauthorized, "Could not validate credentials")
	return "", false
}

func (fb *fakeBackend) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role, ok := fb.role(w, r)
	if !ok {
		return false
	}
	if role != models.RoleAdmin {
		detail(w, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}

func (fb *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	fb.hit("login")
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	json.NewDecoder(r.Body).Decode(&creds)

	switch {
	case creds.Username == "admin" && creds.Password == "admin123":
		json.NewEncoder(w).Encode(api.LoginResult{
			AccessToken: adminToken,
			TokenType:   "bearer",
			User:        models.User{ID: 1, Username: "admin", Email: "admin@shop.test", Role: models.RoleAdmin},
		})
	case creds.Username == "carol" && creds.Password == "carol123":
		json.NewEncoder(w).Encode(api.LoginResult{
			AccessToken: customerToken,
			TokenType:   "bearer",
			User:        models.User{ID: 2, Username: "carol", Email: "carol@shop.test", Role: models.RoleCustomer},
		})
	default:
		detail(w, http.StatusUnauthorized, "Incorrect username or password")
	}
}

func (fb *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	fb.hit("register")
	var req api.RegisterRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "admin" {
		detail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	json.NewEncoder(w).Encode(models.User{ID: 99, Username: req.Username, Email: req.Email, Role: models.Role(req.Role)})
}

func (fb *fakeBackend) listProducts(w http.ResponseWriter, r *http.Request) {
	fb.hit("products")
	if _, ok := fb.role(w, r); !ok {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	json.NewEncoder(w).Encode(fb.products)
}

func (fb *fakeBackend) categories(w http.ResponseWriter, r *http.Request) {
	fb.hit("categories")
	if _, ok := fb.role(w, r); !ok {
		return
	}
	seen := map[string]bool{}
	var cats []string
	fb.mu.Lock()
	for _, p := range fb.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	fb.mu.Unlock()
	json.NewEncoder(w).Encode(cats)
}

func (fb *fakeBackend) getProduct(w http.ResponseWriter, r *http.Request) {
	fb.hit("product")
	if _, ok := fb.role(w, r); !ok {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, p := range fb.products {
		if p.ID == id {
			json.NewEncoder(w).Encode(p)
			return
		}
	}
	detail(w, http.StatusNotFound, "Product not found")
}

func (fb *fakeBackend) createProduct(w http.ResponseWriter, r *http.Request) {
	fb.hit("create")
	if !fb.requireAdmin(w, r) {
		return
	}
	var req api.ProductRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Name == "" || req.SKU == "" {
		detail(w, http.StatusUnprocessableEntity, "name and sku are required")
		return
	}
	fb.mu.Lock()
	p := models.Product{
		ID: fb.nextID, SKU: req.SKU, Name: req.Name, Category: req.Category,
		Description: req.Description, Price: req.Price, Quantity: req.Quantity,
		MinStockLevel: req.MinStockLevel, Supplier: req.Supplier,
	}
	fb.nextID++
	fb.products = append(fb.products, p)
	fb.mu.Unlock()
	json.NewEncoder(w).Encode(p)
}

func (fb *fakeBackend) updateProduct(w http.ResponseWriter, r *http.Request) {
	fb.hit("update")
	if !fb.requireAdmin(w, r) {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))
	var req api.ProductUpdate
	json.NewDecoder(r.Body).Decode(&req)
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i, p := range fb.products {
		if p.ID != id {
			continue
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Quantity != nil {
			p.Quantity = *req.Quantity
		}
		if req.MinStockLevel != nil {
			p.MinStockLevel = *req.MinStockLevel
		}
		if req.Supplier != nil {
			p.Supplier = *req.Supplier
		}
		fb.products[i] = p
		json.NewEncoder(w).Encode(p)
		return
	}
	detail(w, http.StatusNotFound, "Product not found")
}

func (fb *fakeBackend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	fb.hit("delete")
	if !fb.requireAdmin(w, r) {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i, p := range fb.products {
		if p.ID == id {
			fb.products = append(fb.products[:i], fb.products[i+1:]...)
			json.NewEncoder(w).Encode(api.DeleteResult{Message: "Product deleted successfully"})
			return
		}
	}
	detail(w, http.StatusNotFound, "Product not found")
}

func (fb *fakeBackend) history(w http.ResponseWriter, r *http.Request) {
	fb.hit("history")
	if !fb.requireAdmin(w, r) {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))
	json.NewEncoder(w).Encode([]models.HistoryEntry{
		{ID: 1, ProductID: id, Action: "added", QuantityChange: 3, PerformedBy: "admin", Notes: "Product added", CreatedAt: "2026-08-01T10:00:00"},
	})
}

func (fb *fakeBackend) stats(w http.ResponseWriter, r *http.Request) {
	fb.hit("stats")
	if !fb.requireAdmin(w, r) {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var s models.Stats
	cats := map[string]bool{}
	s.TotalProducts = len(fb.products)
	for _, p := range fb.products {
		s.TotalValue += p.Price * float64(p.Quantity)
		switch {
		case p.Quantity == 0:
			s.OutOfStockItems++
		case p.Quantity <= p.MinStockLevel:
			s.LowStockItems++
		}
		if p.Category != "" {
			cats[p.Category] = true
		}
	}
	s.TotalCategories = len(cats)
	json.NewEncoder(w).Encode(s)
}

func (fb *fakeBackend) lowStock(w http.ResponseWriter, r *http.Request) {
	fb.hit("low-stock")
	if !fb.requireAdmin(w, r) {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	low := []models.Product{}
	for _, p := range fb.products {
		if p.Quantity <= p.MinStockLevel {
			low = append(low, p)
		}
	}
	json.NewEncoder(w).Encode(low)
}

func (fb *fakeBackend) categoryStats(w http.ResponseWriter, r *http.Request) {
	fb.hit("category-stats")
	if !fb.requireAdmin(w, r) {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	byCat := map[string]*models.CategoryStats{}
	var out []models.CategoryStats
	for _, p := range fb.products {
		name := p.Category
		if name == "" {
			name = "Uncategorized"
		}
		cs, ok := byCat[name]
		if !ok {
			out = append(out, models.CategoryStats{Category: name})
			cs = &out[len(out)-1]
			byCat[name] = cs
		}
		cs.ProductCount++
		cs.TotalValue += p.Price * float64(p.Quantity)
	}
	json.NewEncoder(w).Encode(out)
}

func (fb *fakeBackend) recentActivity(w http.ResponseWriter, r *http.Request) {
	fb.hit("recent-activity")
	if !fb.requireAdmin(w, r) {
		return
	}
	json.NewEncoder(w).Encode([]models.HistoryEntry{
		{ID: 5, ProductID: 1, Action: "updated", PerformedBy: "admin", Notes: "Product updated: Widget", CreatedAt: "2026-08-28T09:30:00"},
	})
}

// newConsole wires the handler package against a fresh fake backend and
// returns both plus the router under test.
func newConsole(t *testing.T) (*fakeBackend, http.Handler) {
	t.Helper()
	backend := newFakeBackend()
	t.Cleanup(backend.Close)

	handlers.SetAPIClient(api.NewClient(backend.URL, 5*time.Second))
	handlers.SetSessionStore(session.NewMemoryStore())
	handlers.SetLogger(zerolog.Nop())
	handlers.SetSessionOptions("shop_session", time.Hour)

	return backend, web.NewRouter()
}

var remoteSeq int

// postForm submits a urlencoded form. Each request gets a unique client IP
// so the login limiter never throttles the suite.
func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	remoteSeq++
	req.RemoteAddr = fmt.Sprintf("10.1.%d.%d:4000", remoteSeq/250, remoteSeq%250+1)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, username, password string) *http.Cookie {
	t.Helper()
	w := postForm(r, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected login redirect, got %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "shop_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}
