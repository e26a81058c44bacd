package service

import (
	"context"
	"database/sql"
	"errors"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// FavoriteService lets a user bookmark documents. Soft-deleted documents
// drop out of favorite listings automatically.
type FavoriteService interface {
	Add(ctx context.Context, documentID string, actor *model.User) error
	Remove(ctx context.Context, documentID string, actor *model.User) error
	List(ctx context.Context, actor *model.User) ([]DocumentView, error)
	ListIDs(ctx context.Context, actor *model.User) ([]string, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	docs      repository.DocumentRepository
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(favorites repository.FavoriteRepository, docs repository.DocumentRepository) FavoriteService {
	return &favoriteService{favorites: favorites, docs: docs}
}

func (s *favoriteService) Add(ctx context.Context, documentID string, actor *model.User) error {
	if actor == nil {
		return ErrForbidden
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if doc.Deleted() {
		return ErrNotFound
	}
	// Role user only ever sees approved documents, so an unapproved one is
	// reported as missing rather than forbidden.
	if actor.Role == model.RoleUser && doc.Status != model.StatusApproved {
		return ErrNotFound
	}
	return s.favorites.Add(ctx, actor.ID, documentID)
}

func (s *favoriteService) Remove(ctx context.Context, documentID string, actor *model.User) error {
	if actor == nil {
		return ErrForbidden
	}
	return s.favorites.Remove(ctx, actor.ID, documentID)
}

func (s *favoriteService) List(ctx context.Context, actor *model.User) ([]DocumentView, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	rows, err := s.favorites.ListDocuments(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	views := make([]DocumentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newDocumentView(row))
	}
	return views, nil
}

func (s *favoriteService) ListIDs(ctx context.Context, actor *model.User) ([]string, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	return s.favorites.ListIDs(ctx, actor.ID)
}
