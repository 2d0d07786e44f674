package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"famick/internal/cloud"
	"famick/internal/model"
	"famick/internal/repository"
)

// Entity types carried by transfer item logs.
const (
	EntityProduct    = "product"
	EntityStockEntry = "stock_entry"
)

var ErrSessionNotRunnable = errors.New("transfer session is not runnable")

// TransferStatus is a session together with its item logs.
type TransferStatus struct {
	Session *model.TransferSession  `json:"session"`
	Logs    []model.TransferItemLog `json:"logs"`
}

// CloudPusher is the slice of the cloud client the transfer run needs.
type CloudPusher interface {
	PushItem(ctx context.Context, tenantID, entityType string, payload []byte) cloud.Result
}

// TransferService defines the local-to-cloud migration use cases.
type TransferService interface {
	// Create snapshots the tenant's transferable entities into a new session
	// with one pending item log per entity.
	Create(ctx context.Context, tenantID string) (*model.TransferSession, error)

	// Run pushes every pending item to the cloud, re-trying failures up to
	// the configured attempt budget, and finishes the session with counters.
	Run(ctx context.Context, tenantID, sessionID string) (*TransferStatus, error)

	// Status returns the session and its item logs.
	Status(ctx context.Context, tenantID, sessionID string) (*TransferStatus, error)
}

type transferService struct {
	repo        repository.TransferRepository
	products    repository.ProductRepository
	stock       repository.StockRepository
	pusher      CloudPusher
	maxAttempts int
	now         func() time.Time
}

// NewTransferService constructs a new TransferService.
func NewTransferService(
	repo repository.TransferRepository,
	products repository.ProductRepository,
	stock repository.StockRepository,
	pusher CloudPusher,
	maxAttempts int,
) TransferService {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &transferService{
		repo:        repo,
		products:    products,
		stock:       stock,
		pusher:      pusher,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func (s *transferService) Create(ctx context.Context, tenantID string) (*model.TransferSession, error) {
	// Snapshot the full catalog; transfers are rare and tenants are small.
	prods, err := s.products.List(ctx, tenantID, repository.PageQuery{Limit: 100000, Offset: 0})
	if err != nil {
		return nil, fmt.Errorf("enumerate products: %w", err)
	}
	entries, err := s.stock.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("enumerate stock: %w", err)
	}

	sess, err := s.repo.CreateSession(ctx, &model.TransferSession{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		State:      model.SessionCreated,
		TotalItems: len(prods.Items) + len(entries),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	for _, p := range prods.Items {
		if err := s.createLog(ctx, sess.ID, EntityProduct, p.ID); err != nil {
			return nil, err
		}
	}
	for _, e := range entries {
		if err := s.createLog(ctx, sess.ID, EntityStockEntry, e.ID); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func (s *transferService) createLog(ctx context.Context, sessionID, entityType, entityID string) error {
	_, err := s.repo.CreateItemLog(ctx, &model.TransferItemLog{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		EntityType: entityType,
		EntityID:   entityID,
		Status:     model.TransferPending,
		UpdatedAt:  s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create item log: %w", err)
	}
	return nil
}

func (s *transferService) Run(ctx context.Context, tenantID, sessionID string) (*TransferStatus, error) {
	sess, err := s.findSession(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != model.SessionCreated && sess.State != model.SessionPartial {
		return nil, ErrSessionNotRunnable
	}

	if err := s.repo.SetSessionState(ctx, sess.ID, model.SessionRunning); err != nil {
		return nil, err
	}

	// Each round retries what the previous round left pending; the attempt
	// budget bounds the loop.
	for {
		pending, err := s.repo.ListPending(ctx, sess.ID, s.maxAttempts)
		if err != nil {
			return nil, err
		}
		if len(pending) == 0 {
			break
		}
		for _, item := range pending {
			if err := s.pushOne(ctx, tenantID, &item); err != nil {
				return nil, err
			}
		}
	}

	logs, err := s.repo.ListLogs(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	succeeded, failed := 0, 0
	for _, l := range logs {
		switch l.Status {
		case model.TransferSuccess:
			succeeded++
		default:
			failed++
		}
	}

	state := model.SessionCompleted
	if failed > 0 {
		state = model.SessionPartial
	}
	if err := s.repo.FinishSession(ctx, sess.ID, state, succeeded, failed, s.now().UTC()); err != nil {
		return nil, err
	}

	return s.Status(ctx, tenantID, sessionID)
}

// pushOne marshals the entity and records the outcome of one push attempt.
// Push failures land in the log, not in the returned error.
func (s *transferService) pushOne(ctx context.Context, tenantID string, item *model.TransferItemLog) error {
	payload, err := s.marshalEntity(ctx, tenantID, item.EntityType, item.EntityID)
	if err != nil {
		// The entity disappeared between snapshot and push.
		return s.repo.UpdateItemLog(ctx, item.ID, model.TransferFailed, s.maxAttempts, err.Error())
	}

	res := s.pusher.PushItem(ctx, tenantID, item.EntityType, payload)
	attempts := item.Attempts + 1

	if res.Success {
		return s.repo.UpdateItemLog(ctx, item.ID, model.TransferSuccess, attempts, "")
	}

	status := model.TransferPending
	if attempts >= s.maxAttempts {
		status = model.TransferFailed
	}
	return s.repo.UpdateItemLog(ctx, item.ID, status, attempts, res.Message)
}

func (s *transferService) marshalEntity(ctx context.Context, tenantID, entityType, entityID string) ([]byte, error) {
	switch entityType {
	case EntityProduct:
		p, err := s.products.FindByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", entityID, err)
		}
		return json.Marshal(p)
	case EntityStockEntry:
		e, err := s.stock.FindByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, fmt.Errorf("load stock entry %s: %w", entityID, err)
		}
		return json.Marshal(e)
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
}

func (s *transferService) Status(ctx context.Context, tenantID, sessionID string) (*TransferStatus, error) {
	sess, err := s.findSession(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ListLogs(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return &TransferStatus{Session: sess, Logs: logs}, nil
}

func (s *transferService) findSession(ctx context.Context, tenantID, sessionID string) (*model.TransferSession, error) {
	if sessionID == "" {
		return nil, ErrIDRequired
	}
	sess, err := s.repo.FindSession(ctx, tenantID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}
