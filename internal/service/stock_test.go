package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"famick/internal/model"
	"famick/internal/repository"
	repoMocks "famick/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stockServiceAt(repo *repoMocks.MockStockRepository, now time.Time) *stockService {
	return &stockService{repo: repo, now: func() time.Time { return now }}
}

func datePtr(t time.Time) *time.Time { return &t }

func TestStockService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockStockRepository)
		svc := NewStockService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(e *model.StockEntry) bool {
			return e.TenantID == "tenant-1" && e.ID != "" && e.Amount == 2
		})).Return(&model.StockEntry{ID: "s1"}, nil)

		got, err := svc.Add(ctx, "tenant-1", &model.StockEntry{ProductID: "p1", Amount: 2})

		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewStockService(new(repoMocks.MockStockRepository))

		_, err := svc.Add(ctx, "tenant-1", &model.StockEntry{Amount: 1})
		assert.ErrorIs(t, err, ErrIDRequired)

		_, err = svc.Add(ctx, "tenant-1", &model.StockEntry{ProductID: "p1", Amount: 0})
		assert.ErrorIs(t, err, ErrAmountInvalid)
	})
}

func TestStockService_Consume(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	// Entries arrive unsorted; consume must walk them earliest expiry first,
	// with the open-dated entry last.
	entries := []model.StockEntry{
		{ID: "s-none", ProductID: "p1", Amount: 5, ExpiryDate: nil},
		{ID: "s-late", ProductID: "p1", Amount: 3, ExpiryDate: datePtr(now.AddDate(0, 1, 0))},
		{ID: "s-soon", ProductID: "p1", Amount: 2, ExpiryDate: datePtr(now.AddDate(0, 0, 2))},
	}

	t.Run("consumes earliest expiry first across entries", func(t *testing.T) {
		mRepo := new(repoMocks.MockStockRepository)
		svc := stockServiceAt(mRepo, now)

		mRepo.On("ListByProduct", ctx, "tenant-1", "p1").Return(entries, nil)
		// 4 units: all of s-soon (2), then 2 of s-late, in one atomic call.
		mRepo.On("ApplyConsume", ctx, "tenant-1",
			[]string{"s-soon"},
			[]repository.AmountChange{{ID: "s-late", Amount: 1}},
		).Return(nil)

		res, err := svc.Consume(ctx, "tenant-1", "p1", 4)

		require.NoError(t, err)
		assert.Equal(t, float64(4), res.Consumed)
		assert.Equal(t, 2, res.Entries)
		mRepo.AssertExpectations(t)
	})

	t.Run("partial consume when stock runs out", func(t *testing.T) {
		mRepo := new(repoMocks.MockStockRepository)
		svc := stockServiceAt(mRepo, now)

		short := []model.StockEntry{{ID: "s1", ProductID: "p1", Amount: 1, ExpiryDate: datePtr(now)}}
		mRepo.On("ListByProduct", ctx, "tenant-1", "p1").Return(short, nil)
		mRepo.On("ApplyConsume", ctx, "tenant-1", []string{"s1"}, []repository.AmountChange(nil)).Return(nil)

		res, err := svc.Consume(ctx, "tenant-1", "p1", 10)

		require.NoError(t, err)
		assert.Equal(t, float64(10), res.Requested)
		assert.Equal(t, float64(1), res.Consumed)
		mRepo.AssertExpectations(t)
	})

	t.Run("failed write leaves no partial result", func(t *testing.T) {
		mRepo := new(repoMocks.MockStockRepository)
		svc := stockServiceAt(mRepo, now)

		mRepo.On("ListByProduct", ctx, "tenant-1", "p1").Return(entries, nil)
		mRepo.On("ApplyConsume", ctx, "tenant-1", mock.Anything, mock.Anything).
			Return(errors.New("tx aborted"))

		res, err := svc.Consume(ctx, "tenant-1", "p1", 4)

		assert.Error(t, err)
		assert.Nil(t, res)
		mRepo.AssertExpectations(t)
	})

	t.Run("nothing in stock", func(t *testing.T) {
		mRepo := new(repoMocks.MockStockRepository)
		svc := stockServiceAt(mRepo, now)
		mRepo.On("ListByProduct", ctx, "tenant-1", "p1").Return([]model.StockEntry{}, nil)

		_, err := svc.Consume(ctx, "tenant-1", "p1", 1)
		assert.ErrorIs(t, err, ErrOutOfStock)
	})
}

func TestStockService_Expiring(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	mRepo := new(repoMocks.MockStockRepository)
	svc := stockServiceAt(mRepo, now)

	mRepo.On("ListByTenant", ctx, "tenant-1").Return([]model.StockEntry{
		{ID: "expired", ExpiryDate: datePtr(now.AddDate(0, 0, -1))},
		{ID: "today", ExpiryDate: datePtr(now)},
		{ID: "next-week", ExpiryDate: datePtr(now.AddDate(0, 0, 6))},
		{ID: "far-out", ExpiryDate: datePtr(now.AddDate(0, 2, 0))},
		{ID: "open-dated", ExpiryDate: nil},
	}, nil)

	views, err := svc.Expiring(ctx, "tenant-1")

	require.NoError(t, err)
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	// FEFO order, entries beyond one week and open-dated entries excluded.
	assert.Equal(t, []string{"expired", "today", "next-week"}, ids)
	assert.Equal(t, "Expired", views[0].ExpiryText)
	assert.Equal(t, "Today", views[1].ExpiryText)
}

func TestStockService_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	mRepo := new(repoMocks.MockStockRepository)
	svc := stockServiceAt(mRepo, now)

	mRepo.On("ListByTenant", ctx, "tenant-1").Return([]model.StockEntry{
		{ID: "open-dated", ExpiryDate: nil},
		{ID: "soon", ExpiryDate: datePtr(now.AddDate(0, 0, 1))},
	}, nil)

	views, err := svc.List(ctx, "tenant-1")

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "soon", views[0].ID)
	assert.Equal(t, "Tomorrow", views[0].ExpiryText)
	assert.Equal(t, "open-dated", views[1].ID)
	assert.Empty(t, views[1].ExpiryText)
}
