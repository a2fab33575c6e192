package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// StatsCache abstracts the short-lived stats cache (Redis). Counts on the
// admin dashboard may be a few seconds stale, which the dashboard accepts.
type StatsCache interface {
	Get(ctx context.Context) (*ports.Stats, error)
	Set(ctx context.Context, stats *ports.Stats) error
}

type statsService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	cache   StatsCache
	log     zerolog.Logger
}

// NewStatsService returns a StatsService. cache may be nil, in which case
// every call counts live.
func NewStatsService(
	users ports.UserRepository,
	stores ports.StoreRepository,
	ratings ports.RatingRepository,
	cache StatsCache,
	log zerolog.Logger,
) ports.StatsService {
	return &statsService{users: users, stores: stores, ratings: ratings, cache: cache, log: log}
}

// GetStats counts accounts, stores, and ratings. Cache failures degrade to
// live counts rather than failing the request.
func (s *statsService) GetStats(ctx context.Context) (*ports.Stats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("stats cache read failed, counting live")
		} else if cached != nil {
			return cached, nil
		}
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.Stats{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache stats")
		}
	}

	return stats, nil
}
