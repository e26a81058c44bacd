package repository

import (
	"context"

	"bukusaku/internal/model"
)

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	// Create inserts a new category and returns the stored row.
	Create(ctx context.Context, c *model.Category) (*model.Category, error)

	// FindByName returns a category by exact name, or sql.ErrNoRows.
	FindByName(ctx context.Context, name string) (*model.Category, error)

	// List returns all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
}
