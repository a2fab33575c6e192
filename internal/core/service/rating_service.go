package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// RatingService enforces the one-rating-per-user-per-store rule and derives
// per-store aggregates. The atomicity of SubmitOrUpdate rests on the rating
// repository's unique (user_id, store_id) index.
type RatingService struct {
	ratings ports.RatingRepository
	stores  ports.StoreRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewRatingService(
	ratings ports.RatingRepository,
	stores ports.StoreRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, users: users, logger: logger}
}

func (s *RatingService) SubmitOrUpdate(ctx context.Context, userID, storeID string, score int) (*ports.SubmitResult, error) {
	if !domain.ValidScore(score) {
		return nil, domain.ErrInvalidScore
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	created, err := s.ratings.Upsert(ctx, userID, storeID, score)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("store_id", storeID).Msg("rating upsert failed")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("store_id", storeID).
		Int("score", score).
		Bool("created", created).
		Msg("rating submitted")

	return &ports.SubmitResult{Created: created}, nil
}

func (s *RatingService) Update(ctx context.Context, ratingID, userID string, score int) error {
	if !domain.ValidScore(score) {
		return domain.ErrInvalidScore
	}
	return s.ratings.UpdateOwned(ctx, ratingID, userID, score)
}

func (s *RatingService) Delete(ctx context.Context, ratingID, userID string) error {
	return s.ratings.DeleteOwned(ctx, ratingID, userID)
}

func (s *RatingService) ListForUser(ctx context.Context, userID string) ([]ports.UserRating, error) {
	ratings, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserRating, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, ports.UserRating{RatingID: r.ID, StoreID: r.StoreID, Score: r.Score})
	}
	return out, nil
}

// ListForStore joins each rating with its author's display name.
func (s *RatingService) ListForStore(ctx context.Context, storeID string) ([]ports.StoreRating, error) {
	ratings, err := s.ratings.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return []ports.StoreRating{}, nil
	}

	ids := make([]string, 0, len(ratings))
	for _, r := range ratings {
		ids = append(ids, r.UserID)
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.StoreRating, 0, len(ratings))
	for _, r := range ratings {
		name := ""
		if a, ok := authors[r.UserID]; ok {
			name = a.Name
		}
		out = append(out, ports.StoreRating{UserName: name, Score: r.Score})
	}
	return out, nil
}

// AverageForStore returns the mean score rounded to two decimal places.
// Count == 0 signals "no ratings yet"; the average is never reported as
// zero in that case.
func (s *RatingService) AverageForStore(ctx context.Context, storeID string) (ports.StoreAverage, error) {
	avg, count, err := s.ratings.AverageByStore(ctx, storeID)
	if err != nil {
		return ports.StoreAverage{}, err
	}
	if count == 0 {
		return ports.StoreAverage{}, nil
	}
	return ports.StoreAverage{Average: round2(avg), Count: count}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
