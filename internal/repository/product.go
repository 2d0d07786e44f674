package repository

import (
	"context"

	"famick/internal/model"
)

// ProductRepository defines data access for the product catalog.
// All operations are scoped to a tenant.
type ProductRepository interface {
	// Create inserts a new product record and returns the stored row.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// FindByID returns a product by ID within the tenant, or sql.ErrNoRows.
	FindByID(ctx context.Context, tenantID, id string) (*model.Product, error)

	// FindByBarcode returns the tenant's product with the given barcode.
	// A missing barcode is not an error: it returns (nil, nil).
	FindByBarcode(ctx context.Context, tenantID, barcode string) (*model.Product, error)

	// List returns a paginated list of the tenant's products plus the total count.
	List(ctx context.Context, tenantID string, pq PageQuery) (*PageResult[model.Product], error)

	// Delete removes a product by ID. Returns nil if the row did not exist.
	Delete(ctx context.Context, tenantID, id string) error
}
