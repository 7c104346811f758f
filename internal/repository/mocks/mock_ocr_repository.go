package mocks

import (
	"context"

	"docsafe/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockOcrRepository struct {
	mock.Mock
}

func (m *MockOcrRepository) SaveResult(ctx context.Context, r *model.OcrResult) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockOcrRepository) ListByDocument(ctx context.Context, documentID string) ([]model.OcrResult, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OcrResult), args.Error(1)
}
