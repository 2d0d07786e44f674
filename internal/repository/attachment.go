package repository

import (
	"context"

	"famick/internal/model"
)

// AttachmentRepository defines data access for stored file metadata.
// No business logic here, strictly persistence operations.
type AttachmentRepository interface {
	// Create inserts a new attachment record and returns the stored row.
	Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error)

	// FindByID returns an attachment by ID within the tenant, or sql.ErrNoRows.
	FindByID(ctx context.Context, tenantID, id string) (*model.Attachment, error)

	// List returns a paginated list of the tenant's attachments and the total count.
	List(ctx context.Context, tenantID string, pq PageQuery) (*PageResult[model.Attachment], error)

	// Delete removes an attachment by ID. Returns nil if the row did not exist.
	Delete(ctx context.Context, tenantID, id string) error
}
