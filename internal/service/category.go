package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bukusaku/internal/auth"
	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// CategoryService defines category use cases. Listing is open to any
// authenticated caller; creation follows the upload capability.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string, actor *model.User) (*model.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, name string, actor *model.User) (*model.Category, error) {
	if actor == nil || !auth.Allowed(actor.Role, auth.CapUpload) {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	existing, err := s.categories.FindByName(ctx, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category already exists", ErrConflict)
	}

	return s.categories.Create(ctx, &model.Category{
		Name:      name,
		CreatedBy: &actor.ID,
		CreatedAt: time.Now().UTC(),
	})
}
