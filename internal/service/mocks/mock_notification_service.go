package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bukusaku/internal/model"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, actor *model.User) ([]model.Notification, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id string, actor *model.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, actor *model.User) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}
