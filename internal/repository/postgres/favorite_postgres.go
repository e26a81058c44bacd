package postgres

import (
	"context"
	"database/sql"

	"bukusaku/internal/repository"
)

// FavoritePostgres is a PostgreSQL implementation of repository.FavoriteRepository.
type FavoritePostgres struct {
	db *sql.DB
}

// NewFavoritePostgres creates a new FavoritePostgres repository.
func NewFavoritePostgres(db *sql.DB) *FavoritePostgres {
	return &FavoritePostgres{db: db}
}

var _ repository.FavoriteRepository = (*FavoritePostgres)(nil)

// Add records a favorite; duplicates are ignored.
func (r *FavoritePostgres) Add(ctx context.Context, userID, documentID string) error {
	const query = `
		INSERT INTO favorites (user_id, document_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, document_id) DO NOTHING
	`
	_, err := q(ctx, r.db).ExecContext(ctx, query, userID, documentID)
	return err
}

// Remove deletes a favorite; removing a missing row is a no-op.
func (r *FavoritePostgres) Remove(ctx context.Context, userID, documentID string) error {
	const query = `DELETE FROM favorites WHERE user_id = $1 AND document_id = $2`
	_, err := q(ctx, r.db).ExecContext(ctx, query, userID, documentID)
	return err
}

// ListDocuments returns the user's favorited, non-deleted documents joined
// with uploader identity, newest favorite first.
func (r *FavoritePostgres) ListDocuments(ctx context.Context, userID string) ([]repository.DocumentWithUploader, error) {
	const query = `
		SELECT d.id, d.title, d.storage_path, d.content_type, d.size, d.uploaded_by, d.status,
			d.approved_by, d.rejected_by, d.rejection_note, d.deleted_by, d.deleted_at,
			d.category, d.tags, d.created_at, d.updated_at,
			u.name, u.organization, u.email
		FROM favorites f
		JOIN documents d ON d.id = f.document_id
		LEFT JOIN users u ON u.id = d.uploaded_by
		WHERE f.user_id = $1 AND d.deleted_at IS NULL
		ORDER BY f.created_at DESC
	`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID)
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

// ListIDs returns the IDs of the user's favorited, non-deleted documents.
func (r *FavoritePostgres) ListIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT f.document_id
		FROM favorites f
		JOIN documents d ON d.id = f.document_id
		WHERE f.user_id = $1 AND d.deleted_at IS NULL
		ORDER BY f.created_at DESC
	`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
