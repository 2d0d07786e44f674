package mocks

import (
	"context"
	"time"

	"famick/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockShoppingRepository struct {
	mock.Mock
}

func (m *MockShoppingRepository) CreateList(ctx context.Context, l *model.ShoppingList) (*model.ShoppingList, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingRepository) ListLists(ctx context.Context, tenantID string) ([]model.ShoppingList, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingList), args.Error(1)
}

func (m *MockShoppingRepository) FindList(ctx context.Context, tenantID, id string) (*model.ShoppingList, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingRepository) CreateItem(ctx context.Context, item *model.ShoppingListItem) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingRepository) ListItems(ctx context.Context, tenantID, listID string) ([]model.ShoppingListItem, error) {
	args := m.Called(ctx, tenantID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingRepository) SetItemDone(ctx context.Context, tenantID, itemID string, done bool) error {
	args := m.Called(ctx, tenantID, itemID, done)
	return args.Error(0)
}

func (m *MockShoppingRepository) DeleteItem(ctx context.Context, tenantID, itemID string) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}

func (m *MockShoppingRepository) ListOpenItems(ctx context.Context, tenantID string, limit int) ([]model.WidgetProductItem, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WidgetProductItem), args.Error(1)
}

func (m *MockShoppingRepository) CreateSession(ctx context.Context, s *model.ShoppingSession) (*model.ShoppingSession, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingSession), args.Error(1)
}

func (m *MockShoppingRepository) FindSession(ctx context.Context, tenantID, id string) (*model.ShoppingSession, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingSession), args.Error(1)
}

func (m *MockShoppingRepository) SaveSessionSnapshot(ctx context.Context, id string, cached []model.CachedShoppingListItem, at time.Time) error {
	args := m.Called(ctx, id, cached, at)
	return args.Error(0)
}

func (m *MockShoppingRepository) InsertOperation(ctx context.Context, op *model.OfflineOperation) (bool, error) {
	args := m.Called(ctx, op)
	return args.Bool(0), args.Error(1)
}

func (m *MockShoppingRepository) MarkOperationApplied(ctx context.Context, sessionID string, seq int64, at time.Time) error {
	args := m.Called(ctx, sessionID, seq, at)
	return args.Error(0)
}
