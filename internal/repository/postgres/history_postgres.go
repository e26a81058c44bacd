package postgres

import (
	"context"
	"database/sql"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// HistoryPostgres is a PostgreSQL implementation of repository.HistoryRepository.
// The table is append-only; this type exposes no update or delete statements.
type HistoryPostgres struct {
	db *sql.DB
}

// NewHistoryPostgres creates a new HistoryPostgres repository.
func NewHistoryPostgres(db *sql.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.HistoryRepository = (*HistoryPostgres)(nil)

// Create appends one audit entry and returns the stored row.
func (r *HistoryPostgres) Create(ctx context.Context, h *model.DocumentHistory) (*model.DocumentHistory, error) {
	const query = `
		INSERT INTO document_history (id, document_id, changed_by, action, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, document_id, COALESCE(changed_by::text, ''), action, notes, created_at
	`
	row := q(ctx, r.db).QueryRowContext(ctx, query,
		h.ID,
		h.DocumentID,
		h.ChangedBy,
		h.Action,
		h.Notes,
		h.CreatedAt,
	)
	var out model.DocumentHistory
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.ChangedBy,
		&out.Action,
		&out.Notes,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByDocument returns a document's audit entries, oldest first.
func (r *HistoryPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentHistory, error) {
	const query = `
		SELECT id, document_id, COALESCE(changed_by::text, ''), action, notes, created_at
		FROM document_history
		WHERE document_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentHistory, 0)
	for rows.Next() {
		var h model.DocumentHistory
		if err := rows.Scan(
			&h.ID,
			&h.DocumentID,
			&h.ChangedBy,
			&h.Action,
			&h.Notes,
			&h.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
