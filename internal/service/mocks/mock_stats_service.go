package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docsafe/internal/model"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

type MockChartsService struct {
	mock.Mock
}

func (m *MockChartsService) ChartData(ctx context.Context, days int) (*model.ChartData, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChartData), args.Error(1)
}
