package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// StoreFilter carries the optional listing filters. Both are
// case-insensitive substring matches, AND-combined when both are set.
type StoreFilter struct {
	Name    string
	Address string
}

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	// Create inserts a new store. Fails with domain.ErrStoreExists on a
	// duplicate email.
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	// FindByOwner returns the first store owned by ownerID, or
	// domain.ErrStoreNotFound when the owner has none.
	FindByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error)
	List(ctx context.Context, filter StoreFilter) ([]*domain.Store, error)
	Count(ctx context.Context) (int64, error)
}
