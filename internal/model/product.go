package model

import "time"

// Product is a catalog entry in a tenant's household inventory.
// This is a pure domain model with no database-specific dependencies or tags.
type Product struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	Name            string    `json:"name"`
	Barcode         string    `json:"barcode,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Category        string    `json:"category,omitempty"`
	QuantityUnit    string    `json:"quantity_unit,omitempty"`
	EnergyKcal      float64   `json:"energy_kcal,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	DefaultLocation string    `json:"default_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
