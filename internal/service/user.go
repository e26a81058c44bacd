package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"bukusaku/internal/auth"
	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// Postgres error code for a foreign key violation. Audit and approver
// references are detached on delete, but documents.uploaded_by restricts:
// an account that still owns documents cannot be removed.
const fkViolationCode = "23503"

// UserService defines the admin-only user management surface.
type UserService interface {
	// List returns every account. Requires the manage_users capability.
	List(ctx context.Context, actor *model.User) ([]model.User, error)

	// Delete hard-deletes an account. Requires the manage_users capability.
	Delete(ctx context.Context, id string, actor *model.User) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if actor == nil || !auth.Allowed(actor.Role, auth.CapManageUsers) {
		return nil, ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *userService) Delete(ctx context.Context, id string, actor *model.User) error {
	if actor == nil || !auth.Allowed(actor.Role, auth.CapManageUsers) {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
			return fmt.Errorf("%w: account still owns documents", ErrConflict)
		}
		return err
	}
	return nil
}
