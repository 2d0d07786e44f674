package mocks

import (
	"context"
	"io"
	"time"

	"famick/internal/model"
	"famick/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, tenantID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Attachment, error) {
	args := m.Called(ctx, tenantID, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) List(ctx context.Context, tenantID string, limit, offset int) (*service.AttachmentListResult, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttachmentListResult), args.Error(1)
}

func (m *MockAttachmentService) Get(ctx context.Context, tenantID, id string) (*model.Attachment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) Download(ctx context.Context, tenantID, id string) (*model.Attachment, io.ReadCloser, error) {
	args := m.Called(ctx, tenantID, id)
	var att *model.Attachment
	if args.Get(0) != nil {
		att = args.Get(0).(*model.Attachment)
	}
	var rc io.ReadCloser
	if args.Get(1) != nil {
		rc = args.Get(1).(io.ReadCloser)
	}
	return att, rc, args.Error(2)
}

func (m *MockAttachmentService) PresignDownload(ctx context.Context, tenantID, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, tenantID, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
