package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bukusaku/internal/repository"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, documentID string) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, documentID string) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListDocuments(ctx context.Context, userID string) ([]repository.DocumentWithUploader, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DocumentWithUploader), args.Error(1)
}

func (m *MockFavoriteRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
