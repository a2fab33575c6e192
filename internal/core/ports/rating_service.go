package ports

import (
	"context"
)

// SubmitResult reports whether a rating submission created a new rating or
// updated the caller's existing one for that store.
type SubmitResult struct {
	Created bool
}

// UserRating is one rating as seen by its author.
type UserRating struct {
	RatingID string
	StoreID  string
	Score    int
}

// StoreRating is one rating as seen by the rated store's owner, joined with
// the author's display name.
type StoreRating struct {
	UserName string
	Score    int
}

// StoreAverage is the aggregate view of a store's ratings. Count == 0 means
// "no ratings yet"; Average is only meaningful when Count > 0.
type StoreAverage struct {
	Average float64
	Count   int64
}

// RatingService enforces the one-rating-per-user-per-store rule and derives
// per-store aggregates.
type RatingService interface {
	// SubmitOrUpdate upserts the caller's rating for a store. The
	// check-then-act is atomic per (userID, storeID) key at the storage
	// layer, so concurrent submissions never create duplicates.
	SubmitOrUpdate(ctx context.Context, userID, storeID string, score int) (*SubmitResult, error)
	// Update mutates a rating only if owned by userID; otherwise fails with
	// domain.ErrRatingNotFound regardless of whether the rating exists.
	Update(ctx context.Context, ratingID, userID string, score int) error
	// Delete removes a rating with the same ownership semantics as Update.
	Delete(ctx context.Context, ratingID, userID string) error
	ListForUser(ctx context.Context, userID string) ([]UserRating, error)
	ListForStore(ctx context.Context, storeID string) ([]StoreRating, error)
	// AverageForStore returns the mean score rounded to two decimals.
	AverageForStore(ctx context.Context, storeID string) (StoreAverage, error)
}
