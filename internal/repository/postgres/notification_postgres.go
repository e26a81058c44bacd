package postgres

import (
	"context"
	"database/sql"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

// Create inserts a notification row.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q(ctx, r.db).ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Message,
		n.Type,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

// ListByUser returns the user's newest notifications up to limit.
func (r *NotificationPostgres) ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	const query = `
		SELECT id, user_id, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkRead marks one notification read; the userID predicate enforces ownership.
func (r *NotificationPostgres) MarkRead(ctx context.Context, id, userID string) error {
	const query = `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, userID)
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

// MarkAllRead marks all of the user's notifications read.
func (r *NotificationPostgres) MarkAllRead(ctx context.Context, userID string) error {
	const query = `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	_, err := q(ctx, r.db).ExecContext(ctx, query, userID)
	return err
}
