package models

// Stats is the canonical aggregate shape consumed by the dashboard and
// reports views, regardless of whether the numbers came from the backend
// reports endpoint or were derived locally from the product list.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalValue      float64 `json:"total_value"`
	LowStockItems   int     `json:"low_stock_items"`
	OutOfStockItems int     `json:"out_of_stock_items"`
	TotalCategories int     `json:"total_categories"`
}

// CategoryStats summarizes one category of the catalog.
type CategoryStats struct {
	Category     string  `json:"category"`
	ProductCount int     `json:"product_count"`
	TotalValue   float64 `json:"total_value"`
}
