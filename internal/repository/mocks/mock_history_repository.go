package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bukusaku/internal/model"
)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, h *model.DocumentHistory) (*model.DocumentHistory, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepository) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentHistory, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentHistory), args.Error(1)
}
