package mocks

import (
	"context"
	"time"

	"famick/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) CreateSession(ctx context.Context, s *model.TransferSession) (*model.TransferSession, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferSession), args.Error(1)
}

func (m *MockTransferRepository) FindSession(ctx context.Context, tenantID, id string) (*model.TransferSession, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferSession), args.Error(1)
}

func (m *MockTransferRepository) FinishSession(ctx context.Context, id, state string, succeeded, failed int, at time.Time) error {
	args := m.Called(ctx, id, state, succeeded, failed, at)
	return args.Error(0)
}

func (m *MockTransferRepository) SetSessionState(ctx context.Context, id, state string) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockTransferRepository) CreateItemLog(ctx context.Context, l *model.TransferItemLog) (*model.TransferItemLog, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferItemLog), args.Error(1)
}

func (m *MockTransferRepository) ListPending(ctx context.Context, sessionID string, maxAttempts int) ([]model.TransferItemLog, error) {
	args := m.Called(ctx, sessionID, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransferItemLog), args.Error(1)
}

func (m *MockTransferRepository) UpdateItemLog(ctx context.Context, id, status string, attempts int, lastError string) error {
	args := m.Called(ctx, id, status, attempts, lastError)
	return args.Error(0)
}

func (m *MockTransferRepository) ListLogs(ctx context.Context, sessionID string) ([]model.TransferItemLog, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransferItemLog), args.Error(1)
}
