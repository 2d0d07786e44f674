package model

import (
	"encoding/json"
	"time"
)

// ShoppingList is a named list of items to buy within a tenant.
type ShoppingList struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ShoppingListItem is a single line on a shopping list. ProductID is optional;
// free-text items carry only Name.
type ShoppingListItem struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ListID    string    `json:"list_id"`
	ProductID string    `json:"product_id,omitempty"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// ShoppingSession is a Shopping Mode session bound to a device. The companion
// app opens one session per store visit and syncs queued operations against it.
// CachedItems is the item snapshot taken at session start and refreshed on each
// sync, so the device can render the list without further round trips.
type ShoppingSession struct {
	ID          string                   `json:"id"`
	TenantID    string                   `json:"tenant_id"`
	ListID      string                   `json:"list_id"`
	DeviceID    string                   `json:"device_id"`
	CachedItems []CachedShoppingListItem `json:"cached_items"`
	StartedAt   time.Time                `json:"started_at"`
	LastSyncAt  time.Time                `json:"last_sync_at"`
}

// CachedShoppingListItem is the compact item snapshot stored on a session.
type CachedShoppingListItem struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Done   bool    `json:"done"`
}

// SnapshotItems projects full list items into session cache entries.
func SnapshotItems(items []ShoppingListItem) []CachedShoppingListItem {
	cached := make([]CachedShoppingListItem, 0, len(items))
	for _, it := range items {
		cached = append(cached, CachedShoppingListItem{
			ItemID: it.ID,
			Name:   it.Name,
			Amount: it.Amount,
			Done:   it.Done,
		})
	}
	return cached
}

// OfflineOperation is a queued mutation recorded by an offline client and
// replayed server-side in sequence order. Payload is the op-specific JSON body.
type OfflineOperation struct {
	SessionID string          `json:"session_id"`
	Seq       int64           `json:"seq"`
	OpType    string          `json:"op_type"`
	Payload   json.RawMessage `json:"payload"`
	AppliedAt *time.Time      `json:"applied_at,omitempty"`
}

// Offline operation types accepted by the sync replay.
const (
	OpAddItem    = "add_item"
	OpSetDone    = "set_done"
	OpRemoveItem = "remove_item"
)
