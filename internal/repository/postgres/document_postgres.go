package postgres

import (
	"context"
	"database/sql"
	"time"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, storage_path, content_type, size, uploaded_by, status,
		approved_by, rejected_by, rejection_note, deleted_by, deleted_at,
		category, tags, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.StoragePath,
		&d.ContentType,
		&d.Size,
		&d.UploadedBy,
		&d.Status,
		&d.ApprovedBy,
		&d.RejectedBy,
		&d.RejectionNote,
		&d.DeletedBy,
		&d.DeletedAt,
		&d.Category,
		&d.Tags,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const query = `
		INSERT INTO documents (id, title, storage_path, content_type, size, uploaded_by, status,
			category, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + documentColumns
	row := q(ctx, r.db).QueryRowContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.StoragePath,
		doc.ContentType,
		doc.Size,
		doc.UploadedBy,
		doc.Status,
		doc.Category,
		doc.Tags,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID, soft-deleted rows included.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

// List returns non-deleted documents matching the filter, newest first, with
// uploader identity joined in. Title matching is a case-insensitive substring.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) ([]repository.DocumentWithUploader, error) {
	const query = `
		SELECT d.id, d.title, d.storage_path, d.content_type, d.size, d.uploaded_by, d.status,
			d.approved_by, d.rejected_by, d.rejection_note, d.deleted_by, d.deleted_at,
			d.category, d.tags, d.created_at, d.updated_at,
			u.name, u.organization, u.email
		FROM documents d
		LEFT JOIN users u ON u.id = d.uploaded_by
		WHERE d.deleted_at IS NULL
		  AND ($1 = '' OR d.title ILIKE '%' || $1 || '%')
		  AND ($2 = FALSE OR d.status = 'approved')
		ORDER BY d.created_at DESC, d.id DESC
	`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, f.TitleQuery, f.ApprovedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]repository.DocumentWithUploader, 0)
	for rows.Next() {
		var d repository.DocumentWithUploader
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.StoragePath,
			&d.ContentType,
			&d.Size,
			&d.UploadedBy,
			&d.Status,
			&d.ApprovedBy,
			&d.RejectedBy,
			&d.RejectionNote,
			&d.DeletedBy,
			&d.DeletedAt,
			&d.Category,
			&d.Tags,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.UploaderName,
			&d.UploaderOrganization,
			&d.UploaderEmail,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus persists the status, approver/rejecter references and rejection
// note of the document. Last write wins; there is no row locking.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, doc *model.Document) error {
	const query = `
		UPDATE documents
		SET status = $2, approved_by = $3, rejected_by = $4, rejection_note = $5, updated_at = now()
		WHERE id = $1
	`
	res, err := q(ctx, r.db).ExecContext(ctx, query,
		doc.ID,
		doc.Status,
		doc.ApprovedBy,
		doc.RejectedBy,
		doc.RejectionNote,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkDeleted sets the soft-delete marker. Already-deleted rows are left as
// they are; the marker is never reversed.
func (r *DocumentPostgres) MarkDeleted(ctx context.Context, id, deletedBy string, at time.Time) error {
	const query = `
		UPDATE documents
		SET deleted_by = $2, deleted_at = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, deletedBy, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
