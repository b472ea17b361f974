package catalog

import (
	"testing"

	"shopfront/internal/models"
)

func TestAggregate_TotalValue(t *testing.T) {
	products := []models.Product{
		{Price: 10.00, Quantity: 3, MinStockLevel: 10},
		{Price: 5.50, Quantity: 2, MinStockLevel: 10},
	}
	stats := Aggregate(products)
	if stats.TotalValue != 41.00 {
		t.Errorf("expected total value 41.00, got %v", stats.TotalValue)
	}
	if stats.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", stats.TotalProducts)
	}
}

func TestAggregate_StockBuckets(t *testing.T) {
	products := []models.Product{
		{Quantity: 0, MinStockLevel: 10},  // out of stock
		{Quantity: 10, MinStockLevel: 10}, // at the threshold counts as low
		{Quantity: 11, MinStockLevel: 10}, // just above, in stock
		{Quantity: 1, MinStockLevel: 10},  // low
	}
	stats := Aggregate(products)
	if stats.OutOfStockItems != 1 {
		t.Errorf("expected 1 out-of-stock, got %d", stats.OutOfStockItems)
	}
	if stats.LowStockItems != 2 {
		t.Errorf("expected 2 low-stock, got %d", stats.LowStockItems)
	}
}

func TestAggregate_LeavesCategoriesUnset(t *testing.T) {
	products := []models.Product{
		{Category: "Hardware", Quantity: 1, MinStockLevel: 0},
		{Category: "Parts", Quantity: 1, MinStockLevel: 0},
	}
	stats := Aggregate(products)
	if stats.TotalCategories != 0 {
		t.Errorf("derived stats must not populate the categories counter, got %d", stats.TotalCategories)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	if stats != (models.Stats{}) {
		t.Errorf("expected zero stats for empty catalog, got %+v", stats)
	}
}
