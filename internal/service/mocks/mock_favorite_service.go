package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bukusaku/internal/model"
	"bukusaku/internal/service"
)

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Add(ctx context.Context, documentID string, actor *model.User) error {
	args := m.Called(ctx, documentID, actor)
	return args.Error(0)
}

func (m *MockFavoriteService) Remove(ctx context.Context, documentID string, actor *model.User) error {
	args := m.Called(ctx, documentID, actor)
	return args.Error(0)
}

func (m *MockFavoriteService) List(ctx context.Context, actor *model.User) ([]service.DocumentView, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DocumentView), args.Error(1)
}

func (m *MockFavoriteService) ListIDs(ctx context.Context, actor *model.User) ([]string, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
