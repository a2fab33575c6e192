package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// AddStoreInput carries the fields for admin store creation. OwnerID must
// reference an existing account with the store_owner role.
type AddStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// AccountDetails is an account augmented with the owned store's rating
// aggregate when the account is a store owner with a store.
type AccountDetails struct {
	Account *domain.Account
	// AverageRating is nil unless the account owns a rated store.
	AverageRating *float64
	RatingCount   int64
}

// StoreWithRating is the customer-facing store listing entry.
type StoreWithRating struct {
	Store *domain.Store
	// AverageRating is nil when the store has no ratings yet.
	AverageRating *float64
	RatingCount   int64
}

// DirectoryService owns identity and store-ownership records.
type DirectoryService interface {
	// AddUser provisions an account with any of the three roles.
	AddUser(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// AddStore creates a store after validating the owner's role. The role
	// is checked at creation time only.
	AddStore(ctx context.Context, input AddStoreInput) (*domain.Store, error)
	// ListAccounts lists accounts, optionally filtered by role.
	ListAccounts(ctx context.Context, role string) ([]*domain.Account, error)
	// ListStores filters by case-insensitive substring on name and address
	// independently, AND-combined when both are given.
	ListStores(ctx context.Context, filter StoreFilter) ([]*domain.Store, error)
	// ListStoresWithRating is ListStores augmented with each store's
	// average rating, for the customer-facing listing.
	ListStoresWithRating(ctx context.Context, filter StoreFilter) ([]StoreWithRating, error)
	GetAccountDetails(ctx context.Context, accountID string) (*AccountDetails, error)
}
