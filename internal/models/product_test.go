package models

import "testing"

func TestProductStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minLevel int
		want     StockStatus
	}{
		{"zero quantity", 0, 10, StatusOutOfStock},
		{"zero quantity with zero threshold", 0, 0, StatusOutOfStock},
		{"at the threshold", 10, 10, StatusLowStock},
		{"one above the threshold", 11, 10, StatusInStock},
		{"well below the threshold", 1, 10, StatusLowStock},
		{"plenty in stock", 500, 10, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Quantity: tt.quantity, MinStockLevel: tt.minLevel}
			if got := p.Status(); got != tt.want {
				t.Errorf("quantity=%d min=%d: expected %q, got %q", tt.quantity, tt.minLevel, tt.want, got)
			}
		})
	}
}
