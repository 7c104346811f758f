package service

import (
	"context"
	"fmt"
	"time"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// unfiledBucket is the pseudo-folder label for documents without a folder.
const unfiledBucket = "Sin carpeta"

// recentUploadWindow is the trailing window counted as "recent".
const recentUploadWindow = 7 * 24 * time.Hour

// StatsService computes the admin dashboard snapshot.
type StatsService interface {
	// AdminStats recomputes the full system-wide snapshot.
	AdminStats(ctx context.Context) (*model.AdminStats, error)
}

type statsService struct {
	docs    repository.DocumentRepository
	folders repository.FolderRepository
}

// NewStatsService constructs a new StatsService.
func NewStatsService(docs repository.DocumentRepository, folders repository.FolderRepository) StatsService {
	return &statsService{docs: docs, folders: folders}
}

func (s *statsService) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	docs, err := s.docs.ListMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	folders, err := s.folders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}

	stats := &model.AdminStats{
		TotalDocuments:      len(docs),
		DocumentsByStatus:   make(map[string]int),
		DocumentsByCategory: make(map[string]int),
		DocumentsByFolder:   make(map[string]int),
	}

	cutoff := time.Now().UTC().Add(-recentUploadWindow)
	for _, d := range docs {
		stats.DocumentsByStatus[d.Status]++
		stats.StorageUsage += d.FileSize
		if !d.CreatedAt.Before(cutoff) {
			stats.RecentUploads++
		}
	}

	// Categories are not modeled per document; everything lands in one bucket.
	stats.DocumentsByCategory["General"] = len(docs)

	filed := 0
	for _, f := range folders {
		stats.DocumentsByFolder[f.Name] = f.DocumentCount
		filed += f.DocumentCount
	}
	unfiled := len(docs) - filed
	if unfiled < 0 {
		unfiled = 0
	}
	stats.DocumentsByFolder[unfiledBucket] = unfiled

	stats.StorageUsageFormatted = formatStorageSize(stats.StorageUsage)
	return stats, nil
}

// formatStorageSize renders a byte count with one decimal in the largest unit
// that keeps the value above 1.
func formatStorageSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	units := []string{"KB", "MB", "GB", "TB"}
	value := float64(bytes)
	idx := -1
	for value >= unit && idx < len(units)-1 {
		value /= unit
		idx++
	}
	return fmt.Sprintf("%.1f %s", value, units[idx])
}
