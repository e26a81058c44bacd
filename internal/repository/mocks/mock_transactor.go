package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor records the call and runs fn with the same context, so
// service tests exercise the full transition body without a database.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
