package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopfront/internal/models"
)

// Client is a thin request layer over the wholesale inventory REST backend.
// It attaches the bearer credential to every call except Login and Register,
// never retries, and never refreshes tokens: failures propagate to the
// caller for display.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that sends the given bearer token.
// The zero token sends no Authorization header.
func (c *Client) WithToken(token string) *Client {
	cc := *c
	cc.token = token
	return &cc
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload)
	if payload.Detail == "" {
		payload.Detail = http.StatusText(resp.StatusCode)
	}
	return &Error{Status: resp.StatusCode, Detail: payload.Detail}
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Username: username, Password: password}, &result)
	return result, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &user)
	return user, err
}

// Me fetches the user record behind the current token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user)
	return user, err
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/products", q.values(), nil, &products)
	return products, err
}

func (c *Client) Product(ctx context.Context, id int) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product)
	return product, err
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &categories)
	return categories, err
}

func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodPost, "/products", nil, req, &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int, req ProductUpdate) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, req, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	var result DeleteResult
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, &result)
}

func (c *Client) ProductHistory(ctx context.Context, id int) ([]models.HistoryEntry, error) {
	var history []models.HistoryEntry
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/history", id), nil, nil, &history)
	return history, err
}

// Stats fetches the backend-computed aggregate. Admin only; other roles get
// a 403 and fall back to deriving the numbers locally.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := c.do(ctx, http.MethodGet, "/reports/stats", nil, nil, &stats)
	return stats, err
}

func (c *Client) CategoryStats(ctx context.Context) ([]models.CategoryStats, error) {
	var stats []models.CategoryStats
	err := c.do(ctx, http.MethodGet, "/reports/category-stats", nil, nil, &stats)
	return stats, err
}

func (c *Client) RecentActivity(ctx context.Context, days int) ([]models.HistoryEntry, error) {
	q := url.Values{"days": []string{fmt.Sprint(days)}}
	var entries []models.HistoryEntry
	err := c.do(ctx, http.MethodGet, "/reports/recent-activity", q, nil, &entries)
	return entries, err
}

func (c *Client) LowStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/reports/low-stock", nil, nil, &products)
	return products, err
}
