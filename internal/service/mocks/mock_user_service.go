package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bukusaku/internal/model"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string, actor *model.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}
