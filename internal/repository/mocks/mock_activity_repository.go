package mocks

import (
	"context"
	"time"

	"docsafe/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Insert(ctx context.Context, a *model.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActivityRepository) CreatedSince(ctx context.Context, since time.Time, userID string) ([]model.Activity, error) {
	args := m.Called(ctx, since, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}
