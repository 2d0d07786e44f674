package repository

import (
	"context"
	"time"

	"famick/internal/model"
)

// TransferRepository defines data access for cloud transfer sessions and
// their per-item logs.
type TransferRepository interface {
	// CreateSession inserts a transfer session and returns the stored row.
	CreateSession(ctx context.Context, s *model.TransferSession) (*model.TransferSession, error)

	// FindSession returns a session by ID within the tenant, or sql.ErrNoRows.
	FindSession(ctx context.Context, tenantID, id string) (*model.TransferSession, error)

	// FinishSession records the terminal state and counters of a run.
	FinishSession(ctx context.Context, id, state string, succeeded, failed int, at time.Time) error

	// SetSessionState updates only the state column.
	SetSessionState(ctx context.Context, id, state string) error

	// CreateItemLog inserts one pending item log and returns the stored row.
	CreateItemLog(ctx context.Context, l *model.TransferItemLog) (*model.TransferItemLog, error)

	// ListPending returns the session's logs that are still pending and under
	// the attempt budget, oldest first.
	ListPending(ctx context.Context, sessionID string, maxAttempts int) ([]model.TransferItemLog, error)

	// UpdateItemLog records the outcome of one push attempt.
	UpdateItemLog(ctx context.Context, id, status string, attempts int, lastError string) error

	// ListLogs returns all of the session's item logs, oldest first.
	ListLogs(ctx context.Context, sessionID string) ([]model.TransferItemLog, error)
}
