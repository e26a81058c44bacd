package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bukusaku/internal/auth"
	"bukusaku/internal/model"
	repoMocks "bukusaku/internal/repository/mocks"
)

const testPasskey = "letmein"

func newAuthSvc(t *testing.T, users *repoMocks.MockUserRepository) AuthService {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(users, tokens, testPasskey)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         RegisterInput
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
		checkUser  func(t *testing.T, u *model.User)
	}{
		{
			name: "admin with valid passkey",
			in: RegisterInput{
				Username: "rina.admin",
				Email:    "rina@example.com",
				Password: "s3cret",
				Role:     "admin",
				Position: "Kepala Bagian",
				Passkey:  testPasskey,
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "rina@example.com").Return(nil, sql.ErrNoRows)
				mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleAdmin && u.Name == "rina.admin" &&
						u.IsActive && u.PasswordHash != "" && u.PasswordHash != "s3cret"
				})).Return(func(ctx context.Context, u *model.User) *model.User { return u }, nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				require.NotNil(t, u.Position)
				assert.Equal(t, "Kepala Bagian", *u.Position)
			},
		},
		{
			name: "admin with wrong passkey",
			in: RegisterInput{
				Username: "rina.admin",
				Email:    "rina@example.com",
				Password: "s3cret",
				Role:     "admin",
				Passkey:  "wrong",
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "rina@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "admin without username",
			in: RegisterInput{
				Email:    "rina@example.com",
				Password: "s3cret",
				Role:     "admin",
				Passkey:  testPasskey,
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "rina@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "public user with full shape",
			in: RegisterInput{
				Name:         "Budi",
				Email:        "budi@example.com",
				Password:     "s3cret",
				Role:         "user",
				Organization: "Dinas Kesehatan",
				Address:      "Jl. Merdeka 1",
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(nil, sql.ErrNoRows)
				mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleUser && u.Name == "Budi" &&
						u.Organization != nil && *u.Organization == "Dinas Kesehatan" &&
						u.Address != nil && *u.Address == "Jl. Merdeka 1"
				})).Return(func(ctx context.Context, u *model.User) *model.User { return u }, nil)
			},
		},
		{
			name: "public user without organization",
			in: RegisterInput{
				Name:     "Budi",
				Email:    "budi@example.com",
				Password: "s3cret",
				Role:     "user",
				Address:  "Jl. Merdeka 1",
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "manager cannot self register",
			in: RegisterInput{
				Name:     "Budi",
				Email:    "budi@example.com",
				Password: "s3cret",
				Role:     "manager",
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "duplicate email",
			in: RegisterInput{
				Name:         "Budi",
				Email:        "budi@example.com",
				Password:     "s3cret",
				Role:         "user",
				Organization: "Dinas Kesehatan",
				Address:      "Jl. Merdeka 1",
			},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").
					Return(&model.User{ID: "existing"}, nil)
			},
			wantErr: ErrConflict,
		},
		{
			name: "missing email",
			in:   RegisterInput{Password: "s3cret", Role: "user"},
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
			},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := newAuthSvc(t, mUsers)

			tt.setupMocks(mUsers)

			u, err := svc.Register(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, u)
				if tt.checkUser != nil {
					tt.checkUser(t, u)
				}
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	account := func(active bool) *model.User {
		return &model.User{
			ID:           "user-1",
			Name:         "Budi",
			Email:        "budi@example.com",
			PasswordHash: hash,
			Role:         model.RoleUser,
			IsActive:     active,
		}
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "happy path",
			email:    "budi@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(account(true), nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "budi@example.com",
			password: "nope",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(account(true), nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "inactive account with valid credentials",
			email:    "budi@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(account(false), nil)
			},
			wantErr: ErrAccountInactive,
		},
		{
			name:     "repository error",
			email:    "budi@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "budi@example.com").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := newAuthSvc(t, mUsers)

			tt.setupMocks(mUsers)

			res, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidCredentials) || errors.Is(tt.wantErr, ErrAccountInactive) {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, res)
				assert.NotEmpty(t, res.Token)
				assert.Equal(t, "user-1", res.User.ID)
			}
			mUsers.AssertExpectations(t)
		})
	}
}
