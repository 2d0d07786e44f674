package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"famick/internal/model"
	"famick/internal/repository"
)

// StockPostgres is a PostgreSQL implementation of repository.StockRepository.
// Listing queries return rows in FEFO order so callers can consume them directly.
type StockPostgres struct {
	db *sql.DB
}

// NewStockPostgres creates a new StockPostgres repository.
func NewStockPostgres(db *sql.DB) *StockPostgres {
	return &StockPostgres{db: db}
}

var _ repository.StockRepository = (*StockPostgres)(nil)

const stockColumns = `id, tenant_id, product_id, amount, expiry_date, location, opened, created_at`

func (r *StockPostgres) Create(ctx context.Context, e *model.StockEntry) (*model.StockEntry, error) {
	const q = `
		INSERT INTO stock_entries (id, tenant_id, product_id, amount, expiry_date, location, opened, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + stockColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.TenantID,
		e.ProductID,
		e.Amount,
		e.ExpiryDate,
		e.Location,
		e.Opened,
		e.CreatedAt,
	)
	var out model.StockEntry
	if err := row.Scan(
		&out.ID,
		&out.TenantID,
		&out.ProductID,
		&out.Amount,
		&out.ExpiryDate,
		&out.Location,
		&out.Opened,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StockPostgres) FindByID(ctx context.Context, tenantID, id string) (*model.StockEntry, error) {
	const q = `SELECT ` + stockColumns + ` FROM stock_entries WHERE tenant_id = $1 AND id = $2`
	row := r.db.QueryRowContext(ctx, q, tenantID, id)
	var e model.StockEntry
	if err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.ProductID,
		&e.Amount,
		&e.ExpiryDate,
		&e.Location,
		&e.Opened,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *StockPostgres) ListByTenant(ctx context.Context, tenantID string) ([]model.StockEntry, error) {
	const q = `
		SELECT ` + stockColumns + `
		FROM stock_entries
		WHERE tenant_id = $1 AND amount > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC
	`
	return r.queryEntries(ctx, q, tenantID)
}

func (r *StockPostgres) ListByProduct(ctx context.Context, tenantID, productID string) ([]model.StockEntry, error) {
	const q = `
		SELECT ` + stockColumns + `
		FROM stock_entries
		WHERE tenant_id = $1 AND product_id = $2 AND amount > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC
	`
	return r.queryEntries(ctx, q, tenantID, productID)
}

func (r *StockPostgres) ApplyConsume(ctx context.Context, tenantID string, deleteIDs []string, updates []repository.AmountChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qDelete = `DELETE FROM stock_entries WHERE tenant_id = $1 AND id = $2`
	for _, id := range deleteIDs {
		if _, err := tx.ExecContext(ctx, qDelete, tenantID, id); err != nil {
			return fmt.Errorf("delete entry %s: %w", id, err)
		}
	}

	const qUpdate = `UPDATE stock_entries SET amount = $3 WHERE tenant_id = $1 AND id = $2`
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, qUpdate, tenantID, u.ID, u.Amount); err != nil {
			return fmt.Errorf("update entry %s: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

func (r *StockPostgres) Delete(ctx context.Context, tenantID, id string) error {
	const q = `DELETE FROM stock_entries WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.ExecContext(ctx, q, tenantID, id)
	return err
}

func (r *StockPostgres) queryEntries(ctx context.Context, q string, args ...any) ([]model.StockEntry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.StockEntry, 0)
	for rows.Next() {
		var e model.StockEntry
		if err := rows.Scan(
			&e.ID,
			&e.TenantID,
			&e.ProductID,
			&e.Amount,
			&e.ExpiryDate,
			&e.Location,
			&e.Opened,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
