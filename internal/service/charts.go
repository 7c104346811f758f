package service

import (
	"context"
	"fmt"
	"time"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// ChartsService builds the dashboard chart series.
type ChartsService interface {
	// ChartData returns the daily, hourly and status series for the trailing
	// number of days. Days outside [1, 90] fall back to 7.
	ChartData(ctx context.Context, days int) (*model.ChartData, error)
}

type chartsService struct {
	docs       repository.DocumentRepository
	activities repository.ActivityRepository
}

// NewChartsService constructs a new ChartsService.
func NewChartsService(docs repository.DocumentRepository, activities repository.ActivityRepository) ChartsService {
	return &chartsService{docs: docs, activities: activities}
}

func (s *chartsService) ChartData(ctx context.Context, days int) (*model.ChartData, error) {
	if days < 1 || days > 90 {
		days = 7
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	docs, err := s.docs.CreatedSince(ctx, since, "")
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	acts, err := s.activities.CreatedSince(ctx, since, "")
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	meta, err := s.docs.ListMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document meta: %w", err)
	}

	return &model.ChartData{
		DailyActivity:      dailySeries(since, days, docs, acts),
		HourlyActivity:     hourlySeries(acts),
		StatusDistribution: statusSeries(meta),
	}, nil
}

// dailySeries zero-fills one bucket per day so the chart never has gaps.
func dailySeries(since time.Time, days int, docs []model.Document, acts []model.Activity) []model.DailyActivity {
	docsByDay := make(map[string]int)
	for _, d := range docs {
		docsByDay[d.CreatedAt.UTC().Format("2006-01-02")]++
	}
	actsByDay := make(map[string]int)
	for _, a := range acts {
		actsByDay[a.CreatedAt.UTC().Format("2006-01-02")]++
	}

	series := make([]model.DailyActivity, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, model.DailyActivity{
			Date:       day,
			Documents:  docsByDay[day],
			Activities: actsByDay[day],
		})
	}
	return series
}

// hourlySeries buckets activity by hour of day, all 24 buckets present.
func hourlySeries(acts []model.Activity) []model.HourlyActivity {
	counts := make([]int, 24)
	for _, a := range acts {
		counts[a.CreatedAt.UTC().Hour()]++
	}
	series := make([]model.HourlyActivity, 24)
	for h := 0; h < 24; h++ {
		series[h] = model.HourlyActivity{Hour: h, Count: counts[h]}
	}
	return series
}

func statusSeries(docs []model.Document) []model.StatusDistribution {
	counts := make(map[string]int)
	for _, d := range docs {
		counts[d.Status]++
	}

	// Fixed order so the legend is stable across reloads.
	order := []string{
		model.StatusUploaded,
		model.StatusProcessing,
		model.StatusProcessed,
		model.StatusOCRFailed,
		model.StatusError,
	}
	total := len(docs)
	series := make([]model.StatusDistribution, 0, len(order))
	for _, status := range order {
		count, ok := counts[status]
		if !ok {
			continue
		}
		pct := 0
		if total > 0 {
			pct = int(float64(count)/float64(total)*100 + 0.5)
		}
		series = append(series, model.StatusDistribution{
			Status:     status,
			Count:      count,
			Percentage: pct,
		})
	}
	return series
}
