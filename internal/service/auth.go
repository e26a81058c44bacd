package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bukusaku/internal/auth"
	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// RegisterInput carries a registration request. The requested role selects
// which shape is validated: admin accounts register with Username + Passkey,
// user accounts with Name + Organization + Address. Any other role value is
// rejected outright.
type RegisterInput struct {
	Username     string
	Name         string
	Email        string
	Password     string
	Role         string
	Position     string
	Passkey      string
	Organization string
	Address      string
}

// LoginResult is a successful authentication: the bearer token plus the
// account it identifies.
type LoginResult struct {
	Token string      `json:"access_token"`
	User  *model.User `json:"user"`
}

// AuthService defines registration and login use cases.
type AuthService interface {
	// Register validates the role-keyed shape, enforces email uniqueness and
	// creates an immediately active account with a hashed credential.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and issues a bearer token. Inactive
	// accounts are refused even with valid credentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	users        repository.UserRepository
	tokens       *auth.TokenManager
	adminPasskey string
}

// NewAuthService constructs an AuthService. adminPasskey is the shared secret
// gating admin self-registration.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, adminPasskey string) AuthService {
	return &authService{users: users, tokens: tokens, adminPasskey: adminPasskey}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	// Uniqueness is an exact, case-sensitive match. Whether that is the
	// desired policy is an open product question; do not "fix" it here.
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	u := &model.User{
		ID:        uuid.New().String(),
		Email:     in.Email,
		Role:      model.Role(in.Role),
		IsActive:  true, // no verification step; accounts are usable immediately
		CreatedAt: time.Now().UTC(),
	}

	switch model.Role(in.Role) {
	case model.RoleAdmin:
		if strings.TrimSpace(in.Username) == "" {
			return nil, fmt.Errorf("%w: username is required for admin", ErrValidation)
		}
		if in.Passkey == "" || in.Passkey != s.adminPasskey {
			return nil, fmt.Errorf("%w: invalid passkey", ErrValidation)
		}
		u.Name = in.Username
		if p := strings.TrimSpace(in.Position); p != "" {
			u.Position = &p
		}
	case model.RoleUser:
		if strings.TrimSpace(in.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		if strings.TrimSpace(in.Organization) == "" {
			return nil, fmt.Errorf("%w: organization is required", ErrValidation)
		}
		if strings.TrimSpace(in.Address) == "" {
			return nil, fmt.Errorf("%w: address is required", ErrValidation)
		}
		u.Name = in.Name
		org, addr := in.Organization, in.Address
		u.Organization = &org
		u.Address = &addr
	default:
		return nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = digest

	return s.users.Create(ctx, u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountInactive
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}
