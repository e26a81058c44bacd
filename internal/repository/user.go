package repository

import (
	"context"

	"bukusaku/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by exact (case-sensitive) email match.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns all users.
	List(ctx context.Context) ([]model.User, error)

	// Delete hard-deletes a user. Returns sql.ErrNoRows if the row is absent.
	Delete(ctx context.Context, id string) error
}
