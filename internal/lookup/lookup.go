package lookup

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"
)

// Package logger with no prefix or flags so entries stay single-line JSON.
// Kept separate from the global logger so per-request logging never mutates
// shared state.
var logger = log.New(os.Stdout, "", 0)

// ProductInfo is the merged result of a barcode lookup across providers.
type ProductInfo struct {
	Barcode      string  `json:"barcode"`
	Name         string  `json:"name,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Category     string  `json:"category,omitempty"`
	QuantityUnit string  `json:"quantity_unit,omitempty"`
	EnergyKcal   float64 `json:"energy_kcal,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	Source       string  `json:"source,omitempty"`
}

// Provider is a product lookup plugin. Lookup returns (nil, nil) when the
// provider has no data for the barcode; an error means the provider itself
// failed and its result is treated as missing.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, barcode string) (*ProductInfo, error)
}

// merge fills empty fields of dst from src. Fields already set by an earlier
// provider win; later providers only enrich what is still missing.
func merge(dst, src *ProductInfo) {
	if src == nil {
		return
	}
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Brand == "" {
		dst.Brand = src.Brand
	}
	if dst.Category == "" {
		dst.Category = src.Category
	}
	if dst.QuantityUnit == "" {
		dst.QuantityUnit = src.QuantityUnit
	}
	if dst.EnergyKcal == 0 {
		dst.EnergyKcal = src.EnergyKcal
	}
	if dst.ImageURL == "" {
		dst.ImageURL = src.ImageURL
	}
	if dst.Source == "" {
		dst.Source = src.Source
	}
}

func logProviderError(provider, barcode string, err error) {
	entry := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     "warn",
		"component": "lookup",
		"event":     "provider_failed",
		"provider":  provider,
		"barcode":   barcode,
		"error":     err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		logger.Println(string(b))
	}
}
