package model

// AdminStats is a full snapshot of system-wide counts for the dashboard.
// It is recomputed on every request and never persisted.
type AdminStats struct {
	TotalDocuments        int            `json:"total_documents"`
	DocumentsByStatus     map[string]int `json:"documents_by_status"`
	DocumentsByCategory   map[string]int `json:"documents_by_category"`
	DocumentsByFolder     map[string]int `json:"documents_by_folder"`
	RecentUploads         int            `json:"recent_uploads"`
	StorageUsage          int64          `json:"storage_usage"`
	StorageUsageFormatted string         `json:"storage_usage_formatted"`
}

// DailyActivity is one day of the dashboard time series.
type DailyActivity struct {
	Date       string `json:"date"`
	Documents  int    `json:"documents"`
	Activities int    `json:"activities"`
}

// HourlyActivity is one hour-of-day bucket of the activity histogram.
type HourlyActivity struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// StatusDistribution is one slice of the document status breakdown.
type StatusDistribution struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ChartData bundles the three chart series served by the charts endpoint.
type ChartData struct {
	DailyActivity      []DailyActivity      `json:"daily_activity"`
	HourlyActivity     []HourlyActivity     `json:"hourly_activity"`
	StatusDistribution []StatusDistribution `json:"status_distribution"`
}
