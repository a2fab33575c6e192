package service

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// OwnerService resolves the calling store owner's store before delegating
// to the rating ledger. Owning no store is an authorization failure, not a
// not-found: the caller holds the store_owner role but has nothing to act on.
type OwnerService struct {
	stores  ports.StoreRepository
	ratings ports.RatingService
}

func NewOwnerService(stores ports.StoreRepository, ratings ports.RatingService) *OwnerService {
	return &OwnerService{stores: stores, ratings: ratings}
}

func (s *OwnerService) StoreRatings(ctx context.Context, ownerID string) ([]ports.StoreRating, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.ratings.ListForStore(ctx, store.ID)
}

func (s *OwnerService) StoreAverage(ctx context.Context, ownerID string) (ports.StoreAverage, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return ports.StoreAverage{}, err
	}
	return s.ratings.AverageForStore(ctx, store.ID)
}

func (s *OwnerService) OwnStores(ctx context.Context, ownerID string) ([]*domain.Store, error) {
	stores, err := s.stores.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, domain.ErrNoStoreOwned
	}
	return stores, nil
}

func (s *OwnerService) ownedStore(ctx context.Context, ownerID string) (*domain.Store, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if err == domain.ErrStoreNotFound {
			return nil, domain.ErrNoStoreOwned
		}
		return nil, err
	}
	return store, nil
}
