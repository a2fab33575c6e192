package ports

import "context"

// Stats holds the platform-wide entity counts shown on the admin dashboard.
// Counts are point-in-time reads, not a consistent snapshot.
type Stats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// StatsService derives counts across accounts, stores, and ratings.
type StatsService interface {
	GetStats(ctx context.Context) (*Stats, error)
}
