package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// OwnerService exposes the store-owner dashboard operations. Every call
// resolves the caller's store through the ownership record and fails with
// domain.ErrNoStoreOwned when the caller owns nothing.
type OwnerService interface {
	StoreRatings(ctx context.Context, ownerID string) ([]StoreRating, error)
	StoreAverage(ctx context.Context, ownerID string) (StoreAverage, error)
	OwnStores(ctx context.Context, ownerID string) ([]*domain.Store, error)
}
