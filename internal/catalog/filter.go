package catalog

import (
	"strings"

	"shopfront/internal/models"
)

// FilterSpec holds the product list filters. Every field is optional and the
// present ones combine as a conjunction. A FilterSpec is transient view
// state, never persisted.
type FilterSpec struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// IsZero reports whether no filter is set.
func (f FilterSpec) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

func matchesSpec(p models.Product, f FilterSpec) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.SKU), needle) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Filter returns the products matching the spec, preserving input order.
// An empty spec returns the input unchanged.
func Filter(products []models.Product, f FilterSpec) []models.Product {
	if f.IsZero() {
		return products
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesSpec(p, f) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
