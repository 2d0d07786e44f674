package postgres

import (
	"context"
	"database/sql"
	"time"

	"famick/internal/model"
	"famick/internal/repository"
)

// TransferPostgres is a PostgreSQL implementation of repository.TransferRepository.
type TransferPostgres struct {
	db *sql.DB
}

// NewTransferPostgres creates a new TransferPostgres repository.
func NewTransferPostgres(db *sql.DB) *TransferPostgres {
	return &TransferPostgres{db: db}
}

var _ repository.TransferRepository = (*TransferPostgres)(nil)

const sessionColumns = `id, tenant_id, state, total_items, succeeded, failed, created_at, finished_at`

func (r *TransferPostgres) CreateSession(ctx context.Context, s *model.TransferSession) (*model.TransferSession, error) {
	const q = `
		INSERT INTO transfer_sessions (id, tenant_id, state, total_items, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + sessionColumns
	row := r.db.QueryRowContext(ctx, q, s.ID, s.TenantID, s.State, s.TotalItems, s.CreatedAt)
	return scanTransferSession(row)
}

func (r *TransferPostgres) FindSession(ctx context.Context, tenantID, id string) (*model.TransferSession, error) {
	const q = `SELECT ` + sessionColumns + ` FROM transfer_sessions WHERE tenant_id = $1 AND id = $2`
	return scanTransferSession(r.db.QueryRowContext(ctx, q, tenantID, id))
}

func (r *TransferPostgres) FinishSession(ctx context.Context, id, state string, succeeded, failed int, at time.Time) error {
	const q = `
		UPDATE transfer_sessions
		SET state = $2, succeeded = $3, failed = $4, finished_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, state, succeeded, failed, at)
	return err
}

func (r *TransferPostgres) SetSessionState(ctx context.Context, id, state string) error {
	const q = `UPDATE transfer_sessions SET state = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, state)
	return err
}

const logColumns = `id, session_id, entity_type, entity_id, status, attempts, last_error, updated_at`

func (r *TransferPostgres) CreateItemLog(ctx context.Context, l *model.TransferItemLog) (*model.TransferItemLog, error) {
	const q = `
		INSERT INTO transfer_item_logs (id, session_id, entity_type, entity_id, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + logColumns
	row := r.db.QueryRowContext(ctx, q, l.ID, l.SessionID, l.EntityType, l.EntityID, l.Status, l.UpdatedAt)
	return scanItemLog(row)
}

func (r *TransferPostgres) ListPending(ctx context.Context, sessionID string, maxAttempts int) ([]model.TransferItemLog, error) {
	const q = `
		SELECT ` + logColumns + `
		FROM transfer_item_logs
		WHERE session_id = $1 AND status = 'pending' AND attempts < $2
		ORDER BY updated_at ASC, id ASC
	`
	return r.queryLogs(ctx, q, sessionID, maxAttempts)
}

func (r *TransferPostgres) UpdateItemLog(ctx context.Context, id, status string, attempts int, lastError string) error {
	const q = `
		UPDATE transfer_item_logs
		SET status = $2, attempts = $3, last_error = $4, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, status, attempts, lastError)
	return err
}

func (r *TransferPostgres) ListLogs(ctx context.Context, sessionID string) ([]model.TransferItemLog, error) {
	const q = `
		SELECT ` + logColumns + `
		FROM transfer_item_logs
		WHERE session_id = $1
		ORDER BY updated_at ASC, id ASC
	`
	return r.queryLogs(ctx, q, sessionID)
}

func (r *TransferPostgres) queryLogs(ctx context.Context, q string, args ...any) ([]model.TransferItemLog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]model.TransferItemLog, 0)
	for rows.Next() {
		var l model.TransferItemLog
		if err := rows.Scan(
			&l.ID,
			&l.SessionID,
			&l.EntityType,
			&l.EntityID,
			&l.Status,
			&l.Attempts,
			&l.LastError,
			&l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanTransferSession(row *sql.Row) (*model.TransferSession, error) {
	var s model.TransferSession
	if err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.State,
		&s.TotalItems,
		&s.Succeeded,
		&s.Failed,
		&s.CreatedAt,
		&s.FinishedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanItemLog(row *sql.Row) (*model.TransferItemLog, error) {
	var l model.TransferItemLog
	if err := row.Scan(
		&l.ID,
		&l.SessionID,
		&l.EntityType,
		&l.EntityID,
		&l.Status,
		&l.Attempts,
		&l.LastError,
		&l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}
