package mocks

import (
	"context"

	"famick/internal/model"
	"famick/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockShoppingService struct {
	mock.Mock
}

func (m *MockShoppingService) CreateList(ctx context.Context, tenantID, name string) (*model.ShoppingList, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingList), args.Error(1)
}

func (m *MockShoppingService) Lists(ctx context.Context, tenantID string) ([]model.ShoppingList, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingList), args.Error(1)
}

func (m *MockShoppingService) AddItem(ctx context.Context, tenantID string, item *model.ShoppingListItem) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, tenantID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingService) Items(ctx context.Context, tenantID, listID string) ([]model.ShoppingListItem, error) {
	args := m.Called(ctx, tenantID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingService) SetItemDone(ctx context.Context, tenantID, itemID string, done bool) error {
	args := m.Called(ctx, tenantID, itemID, done)
	return args.Error(0)
}

func (m *MockShoppingService) StartSession(ctx context.Context, tenantID, listID, deviceID string) (*model.ShoppingSession, error) {
	args := m.Called(ctx, tenantID, listID, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingSession), args.Error(1)
}

func (m *MockShoppingService) Session(ctx context.Context, tenantID, id string) (*model.ShoppingSession, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingSession), args.Error(1)
}

func (m *MockShoppingService) Sync(ctx context.Context, tenantID, sessionID string, ops []model.OfflineOperation) (*service.SyncResult, error) {
	args := m.Called(ctx, tenantID, sessionID, ops)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}

func (m *MockShoppingService) WidgetItems(ctx context.Context, tenantID string, limit int) ([]model.WidgetProductItem, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WidgetProductItem), args.Error(1)
}
