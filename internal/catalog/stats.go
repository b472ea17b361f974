package catalog

import "shopfront/internal/models"

// Aggregate computes summary counters from a raw product list. Sessions that
// cannot call the reports endpoints derive their dashboard numbers here; the
// admin path gets the same shape from /reports/stats. TotalCategories stays
// zero in the derived path, only the backend computes it.
func Aggregate(products []models.Product) models.Stats {
	stats := models.Stats{TotalProducts: len(products)}
	for _, p := range products {
		stats.TotalValue += p.Price * float64(p.Quantity)
		switch p.Status() {
		case models.StatusOutOfStock:
			stats.OutOfStockItems++
		case models.StatusLowStock:
			stats.LowStockItems++
		}
	}
	return stats
}
