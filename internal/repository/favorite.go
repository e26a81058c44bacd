package repository

import "context"

// FavoriteRepository defines data access for the per-user favorites join.
type FavoriteRepository interface {
	// Add records a favorite; adding an existing favorite is a no-op.
	Add(ctx context.Context, userID, documentID string) error

	// Remove deletes a favorite; removing a missing favorite is a no-op.
	Remove(ctx context.Context, userID, documentID string) error

	// ListDocuments returns the user's favorited, non-deleted documents
	// joined with uploader identity, newest favorite first.
	ListDocuments(ctx context.Context, userID string) ([]DocumentWithUploader, error)

	// ListIDs returns the IDs of the user's favorited, non-deleted documents.
	ListIDs(ctx context.Context, userID string) ([]string, error)
}
