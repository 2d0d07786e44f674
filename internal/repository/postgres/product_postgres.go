package postgres

import (
	"context"
	"database/sql"
	"errors"

	"famick/internal/model"
	"famick/internal/repository"
)

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

const productColumns = `id, tenant_id, name, barcode, brand, category, quantity_unit, energy_kcal, image_url, default_location, created_at`

func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, tenant_id, name, barcode, brand, category, quantity_unit, energy_kcal, image_url, default_location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + productColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.TenantID,
		p.Name,
		p.Barcode,
		p.Brand,
		p.Category,
		p.QuantityUnit,
		p.EnergyKcal,
		p.ImageURL,
		p.DefaultLocation,
		p.CreatedAt,
	)
	return scanProduct(row)
}

func (r *ProductPostgres) FindByID(ctx context.Context, tenantID, id string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = $2`
	return scanProduct(r.db.QueryRowContext(ctx, q, tenantID, id))
}

func (r *ProductPostgres) FindByBarcode(ctx context.Context, tenantID, barcode string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND barcode = $2`
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, tenantID, barcode))
	if errors.Is(err, sql.ErrNoRows) {
		// Missing barcode is a normal lookup miss, not an error.
		return nil, nil
	}
	return p, err
}

func (r *ProductPostgres) List(ctx context.Context, tenantID string, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	const qCount = `SELECT COUNT(*) FROM products WHERE tenant_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, tenantID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1
		ORDER BY name ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, tenantID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.Name,
			&p.Barcode,
			&p.Brand,
			&p.Category,
			&p.QuantityUnit,
			&p.EnergyKcal,
			&p.ImageURL,
			&p.DefaultLocation,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

func (r *ProductPostgres) Delete(ctx context.Context, tenantID, id string) error {
	const q = `DELETE FROM products WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.ExecContext(ctx, q, tenantID, id)
	return err
}

func scanProduct(row *sql.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.Name,
		&p.Barcode,
		&p.Brand,
		&p.Category,
		&p.QuantityUnit,
		&p.EnergyKcal,
		&p.ImageURL,
		&p.DefaultLocation,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
