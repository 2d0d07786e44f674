package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"famick/internal/model"
	"famick/internal/repository"
)

// Sync replay outcomes per queued operation.
const (
	SyncApplied = "applied"
	SyncSkipped = "skipped"
	SyncFailed  = "failed"
)

// SyncOpResult reports the outcome of replaying one offline operation.
type SyncOpResult struct {
	Seq     int64  `json:"seq"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SyncResult is the response body of a sync replay.
type SyncResult struct {
	SessionID string         `json:"session_id"`
	Results   []SyncOpResult `json:"results"`
	Items     []model.ShoppingListItem `json:"items"`
}

// ShoppingService defines the use cases for shopping lists, Shopping Mode
// sessions, and offline sync replay.
type ShoppingService interface {
	// CreateList stores a new shopping list.
	CreateList(ctx context.Context, tenantID, name string) (*model.ShoppingList, error)

	// Lists returns the tenant's shopping lists.
	Lists(ctx context.Context, tenantID string) ([]model.ShoppingList, error)

	// AddItem puts an item on a list.
	AddItem(ctx context.Context, tenantID string, item *model.ShoppingListItem) (*model.ShoppingListItem, error)

	// Items returns the items on a list.
	Items(ctx context.Context, tenantID, listID string) ([]model.ShoppingListItem, error)

	// SetItemDone flips the done flag on one item.
	SetItemDone(ctx context.Context, tenantID, itemID string, done bool) error

	// StartSession opens a Shopping Mode session for a device against a list.
	StartSession(ctx context.Context, tenantID, listID, deviceID string) (*model.ShoppingSession, error)

	// Session returns one session.
	Session(ctx context.Context, tenantID, id string) (*model.ShoppingSession, error)

	// Sync replays queued offline operations against the session's list in
	// sequence order. Already-recorded sequence numbers are skipped so the
	// client can safely resend its whole queue. The fresh item snapshot is
	// returned so the device can rebuild its local cache.
	Sync(ctx context.Context, tenantID, sessionID string, ops []model.OfflineOperation) (*SyncResult, error)

	// WidgetItems returns the compact open-item feed for the widget.
	WidgetItems(ctx context.Context, tenantID string, limit int) ([]model.WidgetProductItem, error)
}

type shoppingService struct {
	repo repository.ShoppingRepository
	now  func() time.Time
}

// NewShoppingService constructs a new ShoppingService.
func NewShoppingService(repo repository.ShoppingRepository) ShoppingService {
	return &shoppingService{repo: repo, now: time.Now}
}

func (s *shoppingService) CreateList(ctx context.Context, tenantID, name string) (*model.ShoppingList, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.CreateList(ctx, &model.ShoppingList{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: s.now().UTC(),
	})
}

func (s *shoppingService) Lists(ctx context.Context, tenantID string) ([]model.ShoppingList, error) {
	return s.repo.ListLists(ctx, tenantID)
}

func (s *shoppingService) AddItem(ctx context.Context, tenantID string, item *model.ShoppingListItem) (*model.ShoppingListItem, error) {
	if item.Name == "" {
		return nil, ErrNameRequired
	}
	if item.ListID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.repo.FindList(ctx, tenantID, item.ListID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Amount <= 0 {
		item.Amount = 1
	}
	item.ID = uuid.New().String()
	item.TenantID = tenantID
	item.CreatedAt = s.now().UTC()
	return s.repo.CreateItem(ctx, item)
}

func (s *shoppingService) Items(ctx context.Context, tenantID, listID string) ([]model.ShoppingListItem, error) {
	if listID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListItems(ctx, tenantID, listID)
}

func (s *shoppingService) SetItemDone(ctx context.Context, tenantID, itemID string, done bool) error {
	if itemID == "" {
		return ErrIDRequired
	}
	err := s.repo.SetItemDone(ctx, tenantID, itemID, done)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *shoppingService) StartSession(ctx context.Context, tenantID, listID, deviceID string) (*model.ShoppingSession, error) {
	if listID == "" || deviceID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.repo.FindList(ctx, tenantID, listID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, tenantID, listID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return s.repo.CreateSession(ctx, &model.ShoppingSession{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ListID:      listID,
		DeviceID:    deviceID,
		CachedItems: model.SnapshotItems(items),
		StartedAt:   now,
		LastSyncAt:  now,
	})
}

func (s *shoppingService) Session(ctx context.Context, tenantID, id string) (*model.ShoppingSession, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sess, err := s.repo.FindSession(ctx, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sess, err
}

func (s *shoppingService) Sync(ctx context.Context, tenantID, sessionID string, ops []model.OfflineOperation) (*SyncResult, error) {
	sess, err := s.Session(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	// Replay strictly in sequence order regardless of request order.
	sort.Slice(ops, func(i, j int) bool { return ops[i].Seq < ops[j].Seq })

	results := make([]SyncOpResult, 0, len(ops))
	for _, op := range ops {
		op.SessionID = sess.ID
		results = append(results, s.replayOne(ctx, tenantID, sess, &op))
	}

	items, err := s.repo.ListItems(ctx, tenantID, sess.ListID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSessionSnapshot(ctx, sess.ID, model.SnapshotItems(items), s.now().UTC()); err != nil {
		return nil, fmt.Errorf("save session snapshot: %w", err)
	}

	return &SyncResult{SessionID: sess.ID, Results: results, Items: items}, nil
}

func (s *shoppingService) replayOne(ctx context.Context, tenantID string, sess *model.ShoppingSession, op *model.OfflineOperation) SyncOpResult {
	inserted, err := s.repo.InsertOperation(ctx, op)
	if err != nil {
		return SyncOpResult{Seq: op.Seq, Status: SyncFailed, Message: err.Error()}
	}
	if !inserted {
		// Already recorded by an earlier sync attempt.
		return SyncOpResult{Seq: op.Seq, Status: SyncSkipped}
	}

	if err := s.applyOp(ctx, tenantID, sess, op); err != nil {
		return SyncOpResult{Seq: op.Seq, Status: SyncFailed, Message: err.Error()}
	}

	if err := s.repo.MarkOperationApplied(ctx, sess.ID, op.Seq, s.now().UTC()); err != nil {
		return SyncOpResult{Seq: op.Seq, Status: SyncFailed, Message: err.Error()}
	}
	return SyncOpResult{Seq: op.Seq, Status: SyncApplied}
}

type addItemPayload struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	ProductID string  `json:"product_id"`
}

type setDonePayload struct {
	ItemID string `json:"item_id"`
	Done   bool   `json:"done"`
}

type removeItemPayload struct {
	ItemID string `json:"item_id"`
}

func (s *shoppingService) applyOp(ctx context.Context, tenantID string, sess *model.ShoppingSession, op *model.OfflineOperation) error {
	switch op.OpType {
	case model.OpAddItem:
		var p addItemPayload
		if err := json.Unmarshal(op.Payload, &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		_, err := s.AddItem(ctx, tenantID, &model.ShoppingListItem{
			ListID:    sess.ListID,
			ProductID: p.ProductID,
			Name:      p.Name,
			Amount:    p.Amount,
		})
		return err

	case model.OpSetDone:
		var p setDonePayload
		if err := json.Unmarshal(op.Payload, &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return s.SetItemDone(ctx, tenantID, p.ItemID, p.Done)

	case model.OpRemoveItem:
		var p removeItemPayload
		if err := json.Unmarshal(op.Payload, &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return s.repo.DeleteItem(ctx, tenantID, p.ItemID)

	default:
		return fmt.Errorf("unknown op type %q", op.OpType)
	}
}

func (s *shoppingService) WidgetItems(ctx context.Context, tenantID string, limit int) ([]model.WidgetProductItem, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	return s.repo.ListOpenItems(ctx, tenantID, limit)
}
