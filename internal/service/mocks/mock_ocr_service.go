package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docsafe/internal/model"
)

type MockOcrService struct {
	mock.Mock
}

func (m *MockOcrService) Trigger(ctx context.Context, documentID string) (*model.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockOcrService) Results(ctx context.Context, documentID string) ([]model.OcrResult, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OcrResult), args.Error(1)
}
