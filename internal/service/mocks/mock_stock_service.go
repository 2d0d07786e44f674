package mocks

import (
	"context"

	"famick/internal/model"
	"famick/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) Add(ctx context.Context, tenantID string, e *model.StockEntry) (*model.StockEntry, error) {
	args := m.Called(ctx, tenantID, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockEntry), args.Error(1)
}

func (m *MockStockService) List(ctx context.Context, tenantID string) ([]service.StockView, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.StockView), args.Error(1)
}

func (m *MockStockService) Consume(ctx context.Context, tenantID, productID string, amount float64) (*service.ConsumeResult, error) {
	args := m.Called(ctx, tenantID, productID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsumeResult), args.Error(1)
}

func (m *MockStockService) Expiring(ctx context.Context, tenantID string) ([]service.StockView, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.StockView), args.Error(1)
}

func (m *MockStockService) Remove(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
