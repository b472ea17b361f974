package models

// Product represents a product entity in the wholesale catalog.
type Product struct {
	ID            int     `json:"id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	Supplier      string  `json:"supplier,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// StockStatus is the derived stock level bucket of a product.
type StockStatus string

const (
	StatusInStock    StockStatus = "in-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusOutOfStock StockStatus = "out-of-stock"
)

// Status derives the stock bucket. A quantity exactly at the minimum stock
// level still counts as low stock.
func (p Product) Status() StockStatus {
	switch {
	case p.Quantity == 0:
		return StatusOutOfStock
	case p.Quantity <= p.MinStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
