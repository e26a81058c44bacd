package repository

import (
	"context"

	"bukusaku/internal/model"
)

// HistoryRepository defines append-only data access for the audit log.
// There are deliberately no update or delete operations.
type HistoryRepository interface {
	// Create appends one audit entry and returns the stored row.
	Create(ctx context.Context, h *model.DocumentHistory) (*model.DocumentHistory, error)

	// ListByDocument returns a document's audit entries, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.DocumentHistory, error)
}
