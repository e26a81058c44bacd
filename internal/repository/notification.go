package repository

import (
	"context"

	"bukusaku/internal/model"
)

// NotificationRepository defines data access for per-user notifications.
type NotificationRepository interface {
	// Create inserts a notification row.
	Create(ctx context.Context, n *model.Notification) error

	// ListByUser returns the user's newest notifications up to limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error)

	// MarkRead marks one notification read; ownership is enforced by userID.
	MarkRead(ctx context.Context, id, userID string) error

	// MarkAllRead marks all of the user's notifications read.
	MarkAllRead(ctx context.Context, userID string) error
}
