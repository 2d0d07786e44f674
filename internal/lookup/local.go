package lookup

import (
	"context"

	"famick/internal/model"
)

// CatalogFinder is the slice of the product repository the local provider
// needs. A nil product with nil error means no catalog entry exists.
type CatalogFinder interface {
	FindByBarcode(ctx context.Context, tenantID, barcode string) (*model.Product, error)
}

// LocalCatalog resolves barcodes against the tenant's own product catalog.
// It is registered first so catalog data always wins over external providers.
type LocalCatalog struct {
	finder   CatalogFinder
	tenantID string
}

// NewLocalCatalog binds the provider to one tenant for the duration of a
// lookup request.
func NewLocalCatalog(finder CatalogFinder, tenantID string) *LocalCatalog {
	return &LocalCatalog{finder: finder, tenantID: tenantID}
}

var _ Provider = (*LocalCatalog)(nil)

func (l *LocalCatalog) Name() string { return "local" }

func (l *LocalCatalog) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	p, err := l.finder.FindByBarcode(ctx, l.tenantID, barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return &ProductInfo{
		Barcode:      barcode,
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		QuantityUnit: p.QuantityUnit,
		EnergyKcal:   p.EnergyKcal,
		ImageURL:     p.ImageURL,
		Source:       l.Name(),
	}, nil
}
