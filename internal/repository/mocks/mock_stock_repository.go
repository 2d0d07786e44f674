package mocks

import (
	"context"

	"famick/internal/model"
	"famick/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, e *model.StockEntry) (*model.StockEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockEntry), args.Error(1)
}

func (m *MockStockRepository) FindByID(ctx context.Context, tenantID, id string) (*model.StockEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockEntry), args.Error(1)
}

func (m *MockStockRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.StockEntry, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StockEntry), args.Error(1)
}

func (m *MockStockRepository) ListByProduct(ctx context.Context, tenantID, productID string) ([]model.StockEntry, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StockEntry), args.Error(1)
}

func (m *MockStockRepository) ApplyConsume(ctx context.Context, tenantID string, deleteIDs []string, updates []repository.AmountChange) error {
	args := m.Called(ctx, tenantID, deleteIDs, updates)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
