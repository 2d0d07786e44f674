package mocks

import (
	"context"

	"famick/internal/model"
	"famick/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Create(ctx context.Context, tenantID string) (*model.TransferSession, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferSession), args.Error(1)
}

func (m *MockTransferService) Run(ctx context.Context, tenantID, sessionID string) (*service.TransferStatus, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransferStatus), args.Error(1)
}

func (m *MockTransferService) Status(ctx context.Context, tenantID, sessionID string) (*service.TransferStatus, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransferStatus), args.Error(1)
}
