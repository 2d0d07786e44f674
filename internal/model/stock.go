package model

import "time"

// StockEntry is a single batch of a product held in stock. ExpiryDate is nil
// for non-perishables; consumption order is FEFO (first expired, first out)
// with nil expiries last.
type StockEntry struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	ProductID  string     `json:"product_id"`
	Amount     float64    `json:"amount"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Location   string     `json:"location,omitempty"`
	Opened     bool       `json:"opened"`
	CreatedAt  time.Time  `json:"created_at"`
}
