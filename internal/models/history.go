package models

// HistoryEntry is a read-only audit record scoped to a product.
type HistoryEntry struct {
	ID             int    `json:"id"`
	ProductID      int    `json:"product_id"`
	Action         string `json:"action"`
	QuantityChange int    `json:"quantity_change,omitempty"`
	PerformedBy    string `json:"performed_by,omitempty"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      string `json:"created_at"`
}
