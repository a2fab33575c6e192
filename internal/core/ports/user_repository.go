package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new account and returns it with its assigned ID.
	// Fails with domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByIDs resolves a batch of account IDs, keyed by ID. Missing IDs
	// are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	// List returns accounts, filtered by role when role is non-empty.
	List(ctx context.Context, role string) ([]*domain.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}
