package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docsafe/internal/model"
	repoMocks "docsafe/internal/repository/mocks"
)

func TestStatsService_AdminStats(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("full snapshot", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		folders := new(repoMocks.MockFolderRepository)
		svc := NewStatsService(docs, folders)

		docs.On("ListMeta", mock.Anything).Return([]model.Document{
			{ID: "d1", Status: model.StatusProcessed, FileSize: 1024, CreatedAt: now.Add(-time.Hour)},
			{ID: "d2", Status: model.StatusProcessed, FileSize: 1024, CreatedAt: now.AddDate(0, 0, -10)},
			{ID: "d3", Status: model.StatusUploaded, FileSize: 0, CreatedAt: now.AddDate(0, 0, -2)},
		}, nil).Once()
		folders.On("List", mock.Anything).Return([]model.Folder{
			{ID: "f1", Name: "Facturas", DocumentCount: 2},
		}, nil).Once()

		stats, err := svc.AdminStats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, stats.TotalDocuments)
		assert.Equal(t, 2, stats.DocumentsByStatus[model.StatusProcessed])
		assert.Equal(t, 1, stats.DocumentsByStatus[model.StatusUploaded])
		assert.Equal(t, 3, stats.DocumentsByCategory["General"])
		assert.Equal(t, 2, stats.DocumentsByFolder["Facturas"])
		assert.Equal(t, 1, stats.DocumentsByFolder["Sin carpeta"])
		assert.Equal(t, 2, stats.RecentUploads)
		assert.Equal(t, int64(2048), stats.StorageUsage)
		assert.Equal(t, "2.0 KB", stats.StorageUsageFormatted)
	})

	t.Run("unfiled count never goes negative", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		folders := new(repoMocks.MockFolderRepository)
		svc := NewStatsService(docs, folders)

		docs.On("ListMeta", mock.Anything).Return([]model.Document{
			{ID: "d1", Status: model.StatusProcessed, CreatedAt: now},
		}, nil).Once()
		// A document linked to two folders would be double-counted here.
		folders.On("List", mock.Anything).Return([]model.Folder{
			{ID: "f1", Name: "A", DocumentCount: 1},
			{ID: "f2", Name: "B", DocumentCount: 1},
		}, nil).Once()

		stats, err := svc.AdminStats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, stats.DocumentsByFolder["Sin carpeta"])
	})

	t.Run("empty system", func(t *testing.T) {
		docs := new(repoMocks.MockDocumentRepository)
		folders := new(repoMocks.MockFolderRepository)
		svc := NewStatsService(docs, folders)

		docs.On("ListMeta", mock.Anything).Return([]model.Document{}, nil).Once()
		folders.On("List", mock.Anything).Return([]model.Folder{}, nil).Once()

		stats, err := svc.AdminStats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalDocuments)
		assert.Equal(t, 0, stats.DocumentsByFolder["Sin carpeta"])
		assert.Equal(t, "0 B", stats.StorageUsageFormatted)
	})
}

func TestFormatStorageSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3.0 TB"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatStorageSize(tc.bytes))
	}
}
