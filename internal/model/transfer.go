package model

import "time"

// Transfer item statuses.
const (
	TransferPending = "pending"
	TransferSuccess = "success"
	TransferFailed  = "failed"
)

// Transfer session states.
const (
	SessionCreated   = "created"
	SessionRunning   = "running"
	SessionCompleted = "completed"
	SessionPartial   = "partial"
)

// TransferSession is one local-to-cloud migration run. Counters are derived
// from the item logs when the run finishes.
type TransferSession struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	State      string     `json:"state"`
	TotalItems int        `json:"total_items"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// TransferItemLog tracks one entity's journey through a transfer session,
// including how many push attempts it took.
type TransferItemLog struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"last_error,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
