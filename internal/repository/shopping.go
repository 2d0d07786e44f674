package repository

import (
	"context"
	"time"

	"famick/internal/model"
)

// ShoppingRepository defines data access for shopping lists, Shopping Mode
// sessions, and the offline operation queue.
type ShoppingRepository interface {
	// CreateList inserts a shopping list and returns the stored row.
	CreateList(ctx context.Context, l *model.ShoppingList) (*model.ShoppingList, error)

	// ListLists returns all of the tenant's shopping lists.
	ListLists(ctx context.Context, tenantID string) ([]model.ShoppingList, error)

	// FindList returns a list by ID within the tenant, or sql.ErrNoRows.
	FindList(ctx context.Context, tenantID, id string) (*model.ShoppingList, error)

	// CreateItem inserts a shopping list item and returns the stored row.
	CreateItem(ctx context.Context, item *model.ShoppingListItem) (*model.ShoppingListItem, error)

	// ListItems returns the items on one list, undone first, oldest first.
	ListItems(ctx context.Context, tenantID, listID string) ([]model.ShoppingListItem, error)

	// SetItemDone flips the done flag on an item, or sql.ErrNoRows.
	SetItemDone(ctx context.Context, tenantID, itemID string, done bool) error

	// DeleteItem removes an item. Returns nil if the row did not exist.
	DeleteItem(ctx context.Context, tenantID, itemID string) error

	// ListOpenItems returns up to limit undone items across all of the
	// tenant's lists, joined with their list names, for the widget feed.
	ListOpenItems(ctx context.Context, tenantID string, limit int) ([]model.WidgetProductItem, error)

	// CreateSession inserts a Shopping Mode session and returns the stored row.
	CreateSession(ctx context.Context, s *model.ShoppingSession) (*model.ShoppingSession, error)

	// FindSession returns a session by ID within the tenant, or sql.ErrNoRows.
	FindSession(ctx context.Context, tenantID, id string) (*model.ShoppingSession, error)

	// SaveSessionSnapshot replaces the session's cached item snapshot and
	// advances its last sync timestamp.
	SaveSessionSnapshot(ctx context.Context, id string, cached []model.CachedShoppingListItem, at time.Time) error

	// InsertOperation records a queued offline operation. It reports false
	// when an operation with the same (session, seq) was already recorded.
	InsertOperation(ctx context.Context, op *model.OfflineOperation) (bool, error)

	// MarkOperationApplied stamps the operation as applied.
	MarkOperationApplied(ctx context.Context, sessionID string, seq int64, at time.Time) error
}
