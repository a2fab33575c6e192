package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RatingRepository defines persistence operations for ratings. The backing
// collection carries a unique compound index on (user_id, store_id), which
// is what makes Upsert safe under concurrent submissions for the same key.
type RatingRepository interface {
	// Upsert atomically inserts or updates the rating keyed by
	// (userID, storeID) and reports whether a new rating was created.
	Upsert(ctx context.Context, userID, storeID string, score int) (created bool, err error)
	// UpdateOwned sets the score of ratingID only when it is owned by
	// userID; otherwise fails with domain.ErrRatingNotFound.
	UpdateOwned(ctx context.Context, ratingID, userID string, score int) error
	// DeleteOwned removes ratingID with the same ownership semantics as
	// UpdateOwned.
	DeleteOwned(ctx context.Context, ratingID, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Rating, error)
	ListByStore(ctx context.Context, storeID string) ([]*domain.Rating, error)
	// AverageByStore returns the raw (unrounded) mean and the rating count.
	// count == 0 means the store has no ratings.
	AverageByStore(ctx context.Context, storeID string) (avg float64, count int64, err error)
	Count(ctx context.Context) (int64, error)
}
