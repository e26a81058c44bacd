package postgres

import (
	"context"
	"database/sql"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

// Create inserts a new category and returns the stored row.
func (r *CategoryPostgres) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	const query = `
		INSERT INTO categories (name, created_by, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, name, created_by, created_at
	`
	row := q(ctx, r.db).QueryRowContext(ctx, query, c.Name, c.CreatedBy, c.CreatedAt)
	var out model.Category
	if err := row.Scan(&out.ID, &out.Name, &out.CreatedBy, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByName returns a category by exact name.
func (r *CategoryPostgres) FindByName(ctx context.Context, name string) (*model.Category, error) {
	const query = `SELECT id, name, created_by, created_at FROM categories WHERE name = $1`
	var c model.Category
	if err := q(ctx, r.db).QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryPostgres) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, created_by, created_at FROM categories ORDER BY name ASC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
