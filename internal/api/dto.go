package api

import (
	"net/url"
	"strconv"

	"shopfront/internal/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ProductRequest struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	Supplier      string  `json:"supplier"`
}

// ProductUpdate carries the mutable product fields for a partial update.
// SKU is write-once, so mutating it is not representable here.
type ProductUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Quantity      *int     `json:"quantity,omitempty"`
	MinStockLevel *int     `json:"min_stock_level,omitempty"`
	Supplier      *string  `json:"supplier,omitempty"`
}

type DeleteResult struct {
	Message string `json:"message"`
}

// ProductQuery maps onto the backend's server-side filter params. The views
// normally fetch the full list and filter locally, but the contract supports
// pushing the filters down.
type ProductQuery struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	return v
}
