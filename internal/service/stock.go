package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"famick/internal/expiry"
	"famick/internal/model"
	"famick/internal/repository"
)

var (
	ErrAmountInvalid = errors.New("amount must be positive")
	ErrOutOfStock    = errors.New("no stock to consume")
)

// StockView is a stock entry decorated with its expiry display text.
type StockView struct {
	model.StockEntry
	ExpiryText string `json:"expiry_text,omitempty"`
}

// ConsumeResult reports what a FEFO consume actually took.
type ConsumeResult struct {
	Requested float64 `json:"requested"`
	Consumed  float64 `json:"consumed"`
	Entries   int     `json:"entries"`
}

// StockService defines the use cases for household stock.
type StockService interface {
	// Add stores a new stock entry for the tenant.
	Add(ctx context.Context, tenantID string, e *model.StockEntry) (*model.StockEntry, error)

	// List returns all stock entries in FEFO order with display texts.
	List(ctx context.Context, tenantID string) ([]StockView, error)

	// Consume takes the given amount of a product out of stock in FEFO
	// order. It consumes partially when stock runs out. All row changes are
	// applied in one transaction, so a failed consume leaves stock untouched.
	Consume(ctx context.Context, tenantID, productID string, amount float64) (*ConsumeResult, error)

	// Expiring returns entries already expired or expiring within the next
	// seven days, in FEFO order.
	Expiring(ctx context.Context, tenantID string) ([]StockView, error)

	// Remove deletes a stock entry.
	Remove(ctx context.Context, tenantID, id string) error
}

type stockService struct {
	repo repository.StockRepository
	now  func() time.Time
}

// NewStockService constructs a new StockService.
func NewStockService(repo repository.StockRepository) StockService {
	return &stockService{repo: repo, now: time.Now}
}

func (s *stockService) Add(ctx context.Context, tenantID string, e *model.StockEntry) (*model.StockEntry, error) {
	if e.ProductID == "" {
		return nil, ErrIDRequired
	}
	if e.Amount <= 0 {
		return nil, ErrAmountInvalid
	}
	e.ID = uuid.New().String()
	e.TenantID = tenantID
	e.CreatedAt = s.now().UTC()

	stored, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create stock entry: %w", err)
	}
	return stored, nil
}

func (s *stockService) List(ctx context.Context, tenantID string) ([]StockView, error) {
	entries, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	// The repository already orders FEFO; sorting again keeps the contract
	// independent of the backend.
	expiry.SortFEFO(entries)
	return s.decorate(entries), nil
}

func (s *stockService) Consume(ctx context.Context, tenantID, productID string, amount float64) (*ConsumeResult, error) {
	if productID == "" {
		return nil, ErrIDRequired
	}
	if amount <= 0 {
		return nil, ErrAmountInvalid
	}

	entries, err := s.repo.ListByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	expiry.SortFEFO(entries)
	if len(entries) == 0 {
		return nil, ErrOutOfStock
	}

	res := &ConsumeResult{Requested: amount}
	remaining := amount
	var deletes []string
	var updates []repository.AmountChange
	for _, e := range entries {
		if remaining <= 0 {
			break
		}
		take := e.Amount
		if take > remaining {
			take = remaining
		}

		if left := e.Amount - take; left <= 0 {
			deletes = append(deletes, e.ID)
		} else {
			updates = append(updates, repository.AmountChange{ID: e.ID, Amount: left})
		}

		remaining -= take
		res.Consumed += take
		res.Entries++
	}

	if err := s.repo.ApplyConsume(ctx, tenantID, deletes, updates); err != nil {
		return nil, fmt.Errorf("apply consume: %w", err)
	}
	return res, nil
}

func (s *stockService) Expiring(ctx context.Context, tenantID string) ([]StockView, error) {
	entries, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	expiry.SortFEFO(entries)

	now := s.now()
	soon := make([]model.StockEntry, 0)
	for _, e := range entries {
		switch expiry.BucketFor(now, e.ExpiryDate) {
		case expiry.BucketExpired, expiry.BucketToday, expiry.BucketTomorrow, expiry.BucketWithinWeek:
			soon = append(soon, e)
		}
	}
	return s.decorate(soon), nil
}

func (s *stockService) Remove(ctx context.Context, tenantID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *stockService) decorate(entries []model.StockEntry) []StockView {
	now := s.now()
	views := make([]StockView, len(entries))
	for i, e := range entries {
		views[i] = StockView{
			StockEntry: e,
			ExpiryText: expiry.DisplayText(now, e.ExpiryDate),
		}
	}
	return views
}
