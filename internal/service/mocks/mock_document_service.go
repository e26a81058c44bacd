package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bukusaku/internal/model"
	"bukusaku/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, in service.UploadInput) (*model.Document, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, actor *model.User, titleQuery string) ([]service.DocumentView, error) {
	args := m.Called(ctx, actor, titleQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DocumentView), args.Error(1)
}

func (m *MockDocumentService) UpdateStatus(ctx context.Context, id string, actor *model.User, status model.Status, note string) (*model.Document, error) {
	args := m.Called(ctx, id, actor, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string, actor *model.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockDocumentService) History(ctx context.Context, id string, actor *model.User) ([]model.DocumentHistory, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentHistory), args.Error(1)
}
