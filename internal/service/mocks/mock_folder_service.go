package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docsafe/internal/model"
	"docsafe/internal/repository"
	"docsafe/internal/service"
)

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) Create(ctx context.Context, actorID string, params service.FolderCreateParams) (*model.Folder, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) List(ctx context.Context) ([]model.Folder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderService) Update(ctx context.Context, actorID, id string, upd repository.FolderUpdate) (*model.Folder, error) {
	args := m.Called(ctx, actorID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Delete(ctx context.Context, actorID, id string) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

func (m *MockFolderService) Move(ctx context.Context, actorID string, documentIDs []string, folderID *string) error {
	args := m.Called(ctx, actorID, documentIDs, folderID)
	return args.Error(0)
}
