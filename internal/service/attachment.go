package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"famick/internal/model"
	"famick/internal/repository"
	"famick/internal/storage"
)

var ErrReaderNil = errors.New("reader is nil")

// AttachmentListResult is the service-level DTO for paginated attachments.
type AttachmentListResult struct {
	Items []model.Attachment `json:"data"`
	Total int                `json:"total"`
}

// AttachmentService defines the use cases for stored files.
type AttachmentService interface {
	// Upload uploads the content to object storage, saves metadata to DB, and rolls back storage if DB save fails.
	// - originalFilename is used only to extract extension; the stored filename is UUID + original extension.
	Upload(ctx context.Context, tenantID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Attachment, error)

	// List returns attachments using limit/offset and a total count.
	List(ctx context.Context, tenantID string, limit, offset int) (*AttachmentListResult, error)

	// Get returns a single attachment by its ID.
	Get(ctx context.Context, tenantID, id string) (*model.Attachment, error)

	// Download returns the attachment metadata and a streaming reader of its content.
	Download(ctx context.Context, tenantID, id string) (*model.Attachment, io.ReadCloser, error)

	// PresignDownload returns a time-limited URL for the attachment content.
	PresignDownload(ctx context.Context, tenantID, id string, expiry time.Duration) (string, error)

	// Delete removes an attachment by ID from both storage and repository.
	Delete(ctx context.Context, tenantID, id string) error
}

// attachmentService is a concrete implementation of AttachmentService.
type attachmentService struct {
	store storage.Storage
	repo  repository.AttachmentRepository
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(store storage.Storage, repo repository.AttachmentRepository) AttachmentService {
	return &attachmentService{store: store, repo: repo}
}

func (s *attachmentService) Upload(ctx context.Context, tenantID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	// Generate filename using UUID + extension; objects are keyed per tenant.
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("attachments", tenantID, genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"tenant-id":         tenantID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	att := &model.Attachment{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, att)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated attachments without exposing repository types.
func (s *attachmentService) List(ctx context.Context, tenantID string, limit, offset int) (*AttachmentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, tenantID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AttachmentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *attachmentService) Get(ctx context.Context, tenantID, id string) (*model.Attachment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	att, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

func (s *attachmentService) Download(ctx context.Context, tenantID, id string) (*model.Attachment, io.ReadCloser, error) {
	att, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, att.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get from storage: %w", err)
	}
	return att, rc, nil
}

func (s *attachmentService) PresignDownload(ctx context.Context, tenantID, id string, expiry time.Duration) (string, error) {
	att, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, att.StoragePath, expiry)
}

// Delete removes an attachment from storage, then deletes its record.
func (s *attachmentService) Delete(ctx context.Context, tenantID, id string) error {
	att, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, att.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, tenantID, id)
}
