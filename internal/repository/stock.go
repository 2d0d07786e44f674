package repository

import (
	"context"

	"famick/internal/model"
)

// AmountChange sets a new remaining amount for one stock entry.
type AmountChange struct {
	ID     string
	Amount float64
}

// StockRepository defines data access for stock entries.
type StockRepository interface {
	// Create inserts a new stock entry and returns the stored row.
	Create(ctx context.Context, e *model.StockEntry) (*model.StockEntry, error)

	// FindByID returns a stock entry by ID within the tenant, or sql.ErrNoRows.
	FindByID(ctx context.Context, tenantID, id string) (*model.StockEntry, error)

	// ListByTenant returns all of the tenant's stock entries in FEFO order
	// (expiry ascending, nulls last).
	ListByTenant(ctx context.Context, tenantID string) ([]model.StockEntry, error)

	// ListByProduct returns the tenant's stock entries for one product in FEFO order.
	ListByProduct(ctx context.Context, tenantID, productID string) ([]model.StockEntry, error)

	// ApplyConsume applies one FEFO consume atomically: drained entries are
	// deleted and partially consumed ones get their new amounts, all in a
	// single transaction.
	ApplyConsume(ctx context.Context, tenantID string, deleteIDs []string, updates []AmountChange) error

	// Delete removes a stock entry. Returns nil if the row did not exist.
	Delete(ctx context.Context, tenantID, id string) error
}
