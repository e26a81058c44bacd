package repository

import (
	"context"
	"time"

	"bukusaku/internal/model"
)

// DocumentFilter narrows a listing. TitleQuery is a case-insensitive substring
// match; ApprovedOnly restricts to status=approved (applied for "user"-role
// callers). Soft-deleted documents are always excluded.
type DocumentFilter struct {
	TitleQuery   string
	ApprovedOnly bool
}

// DocumentWithUploader is a document row joined with its uploader's identity.
// The uploader fields are nil when the uploader reference dangles.
type DocumentWithUploader struct {
	model.Document
	UploaderName         *string
	UploaderOrganization *string
	UploaderEmail        *string
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, soft-deleted rows included.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns non-deleted documents matching the filter, newest first,
	// joined with uploader identity.
	List(ctx context.Context, f DocumentFilter) ([]DocumentWithUploader, error)

	// UpdateStatus persists the status, approver/rejecter references and
	// rejection note of the given document.
	UpdateStatus(ctx context.Context, doc *model.Document) error

	// MarkDeleted sets the soft-delete marker on a document.
	MarkDeleted(ctx context.Context, id, deletedBy string, at time.Time) error
}
