package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"famick/internal/model"
	"famick/internal/repository"
)

// ShoppingPostgres is a PostgreSQL implementation of repository.ShoppingRepository.
type ShoppingPostgres struct {
	db *sql.DB
}

// NewShoppingPostgres creates a new ShoppingPostgres repository.
func NewShoppingPostgres(db *sql.DB) *ShoppingPostgres {
	return &ShoppingPostgres{db: db}
}

var _ repository.ShoppingRepository = (*ShoppingPostgres)(nil)

func (r *ShoppingPostgres) CreateList(ctx context.Context, l *model.ShoppingList) (*model.ShoppingList, error) {
	const q = `
		INSERT INTO shopping_lists (id, tenant_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tenant_id, name, created_at
	`
	row := r.db.QueryRowContext(ctx, q, l.ID, l.TenantID, l.Name, l.CreatedAt)
	var out model.ShoppingList
	if err := row.Scan(&out.ID, &out.TenantID, &out.Name, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ShoppingPostgres) ListLists(ctx context.Context, tenantID string) ([]model.ShoppingList, error) {
	const q = `
		SELECT id, tenant_id, name, created_at
		FROM shopping_lists
		WHERE tenant_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := make([]model.ShoppingList, 0)
	for rows.Next() {
		var l model.ShoppingList
		if err := rows.Scan(&l.ID, &l.TenantID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *ShoppingPostgres) FindList(ctx context.Context, tenantID, id string) (*model.ShoppingList, error) {
	const q = `SELECT id, tenant_id, name, created_at FROM shopping_lists WHERE tenant_id = $1 AND id = $2`
	var l model.ShoppingList
	if err := r.db.QueryRowContext(ctx, q, tenantID, id).Scan(&l.ID, &l.TenantID, &l.Name, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

const itemColumns = `id, tenant_id, list_id, COALESCE(product_id::text, ''), name, amount, done, created_at`

func (r *ShoppingPostgres) CreateItem(ctx context.Context, item *model.ShoppingListItem) (*model.ShoppingListItem, error) {
	const q = `
		INSERT INTO shopping_list_items (id, tenant_id, list_id, product_id, name, amount, done, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8)
		RETURNING ` + itemColumns
	row := r.db.QueryRowContext(ctx, q,
		item.ID,
		item.TenantID,
		item.ListID,
		item.ProductID,
		item.Name,
		item.Amount,
		item.Done,
		item.CreatedAt,
	)
	return scanItem(row)
}

func (r *ShoppingPostgres) ListItems(ctx context.Context, tenantID, listID string) ([]model.ShoppingListItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM shopping_list_items
		WHERE tenant_id = $1 AND list_id = $2
		ORDER BY done ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, tenantID, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ShoppingListItem, 0)
	for rows.Next() {
		var it model.ShoppingListItem
		if err := rows.Scan(
			&it.ID,
			&it.TenantID,
			&it.ListID,
			&it.ProductID,
			&it.Name,
			&it.Amount,
			&it.Done,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ShoppingPostgres) SetItemDone(ctx context.Context, tenantID, itemID string, done bool) error {
	const q = `UPDATE shopping_list_items SET done = $3 WHERE tenant_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, tenantID, itemID, done)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ShoppingPostgres) DeleteItem(ctx context.Context, tenantID, itemID string) error {
	const q = `DELETE FROM shopping_list_items WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.ExecContext(ctx, q, tenantID, itemID)
	return err
}

func (r *ShoppingPostgres) ListOpenItems(ctx context.Context, tenantID string, limit int) ([]model.WidgetProductItem, error) {
	const q = `
		SELECT i.name, i.amount, l.name
		FROM shopping_list_items i
		JOIN shopping_lists l ON l.id = i.list_id
		WHERE i.tenant_id = $1 AND i.done = false
		ORDER BY i.created_at ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WidgetProductItem, 0)
	for rows.Next() {
		var w model.WidgetProductItem
		if err := rows.Scan(&w.Name, &w.Amount, &w.ListName); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *ShoppingPostgres) CreateSession(ctx context.Context, s *model.ShoppingSession) (*model.ShoppingSession, error) {
	cached, err := json.Marshal(s.CachedItems)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO shopping_sessions (id, tenant_id, list_id, device_id, cached_items, started_at, last_sync_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, tenant_id, list_id, device_id, cached_items, started_at, last_sync_at
	`
	row := r.db.QueryRowContext(ctx, q, s.ID, s.TenantID, s.ListID, s.DeviceID, cached, s.StartedAt, s.LastSyncAt)
	return scanSession(row)
}

func (r *ShoppingPostgres) FindSession(ctx context.Context, tenantID, id string) (*model.ShoppingSession, error) {
	const q = `
		SELECT id, tenant_id, list_id, device_id, cached_items, started_at, last_sync_at
		FROM shopping_sessions
		WHERE tenant_id = $1 AND id = $2
	`
	return scanSession(r.db.QueryRowContext(ctx, q, tenantID, id))
}

func (r *ShoppingPostgres) SaveSessionSnapshot(ctx context.Context, id string, cached []model.CachedShoppingListItem, at time.Time) error {
	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	const q = `UPDATE shopping_sessions SET cached_items = $2, last_sync_at = $3 WHERE id = $1`
	_, err = r.db.ExecContext(ctx, q, id, raw, at)
	return err
}

func scanSession(row *sql.Row) (*model.ShoppingSession, error) {
	var s model.ShoppingSession
	var cached []byte
	if err := row.Scan(
		&s.ID, &s.TenantID, &s.ListID, &s.DeviceID, &cached, &s.StartedAt, &s.LastSyncAt,
	); err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		if err := json.Unmarshal(cached, &s.CachedItems); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (r *ShoppingPostgres) InsertOperation(ctx context.Context, op *model.OfflineOperation) (bool, error) {
	const q = `
		INSERT INTO offline_operations (session_id, seq, op_type, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, seq) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q, op.SessionID, op.Seq, op.OpType, []byte(op.Payload))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ShoppingPostgres) MarkOperationApplied(ctx context.Context, sessionID string, seq int64, at time.Time) error {
	const q = `UPDATE offline_operations SET applied_at = $3 WHERE session_id = $1 AND seq = $2`
	_, err := r.db.ExecContext(ctx, q, sessionID, seq, at)
	return err
}

func scanItem(row *sql.Row) (*model.ShoppingListItem, error) {
	var it model.ShoppingListItem
	if err := row.Scan(
		&it.ID,
		&it.TenantID,
		&it.ListID,
		&it.ProductID,
		&it.Name,
		&it.Amount,
		&it.Done,
		&it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}
