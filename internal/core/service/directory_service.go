package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// DirectoryService owns identity and store-ownership records. Store
// creation validates the owner's role once; later role changes do not
// revoke the ownership reference.
type DirectoryService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingService
	auth    ports.AuthService
	logger  zerolog.Logger
}

func NewDirectoryService(
	users ports.UserRepository,
	stores ports.StoreRepository,
	ratings ports.RatingService,
	auth ports.AuthService,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{users: users, stores: stores, ratings: ratings, auth: auth, logger: logger}
}

// AddUser provisions an account on behalf of an admin. Validation and
// hashing are shared with self-registration.
func (s *DirectoryService) AddUser(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	account, err := s.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", account.ID).Str("role", account.Role).Msg("account provisioned")
	return account, nil
}

func (s *DirectoryService) AddStore(ctx context.Context, input ports.AddStoreInput) (*domain.Store, error) {
	if input.Name == "" || input.Email == "" || input.Address == "" || input.OwnerID == "" {
		return nil, domain.ErrInvalidOwner
	}

	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidOwner
		}
		return nil, err
	}
	if owner.Role != domain.RoleStoreOwner {
		return nil, domain.ErrInvalidOwner
	}

	store := &domain.Store{
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Address,
		OwnerID:   owner.ID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.stores.Create(ctx, store)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", created.ID).Str("owner_id", owner.ID).Msg("store created")
	return created, nil
}

func (s *DirectoryService) ListAccounts(ctx context.Context, role string) ([]*domain.Account, error) {
	if role != "" && !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	return s.users.List(ctx, role)
}

func (s *DirectoryService) ListStores(ctx context.Context, filter ports.StoreFilter) ([]*domain.Store, error) {
	return s.stores.List(ctx, filter)
}

func (s *DirectoryService) ListStoresWithRating(ctx context.Context, filter ports.StoreFilter) ([]ports.StoreWithRating, error) {
	stores, err := s.stores.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]ports.StoreWithRating, 0, len(stores))
	for _, st := range stores {
		agg, err := s.ratings.AverageForStore(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		entry := ports.StoreWithRating{Store: st, RatingCount: agg.Count}
		if agg.Count > 0 {
			avg := agg.Average
			entry.AverageRating = &avg
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetAccountDetails augments a store owner's record with their store's
// rating aggregate. Owners without a store, and all other roles, come back
// with a nil average.
func (s *DirectoryService) GetAccountDetails(ctx context.Context, accountID string) (*ports.AccountDetails, error) {
	account, err := s.users.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	details := &ports.AccountDetails{Account: account}
	if account.Role != domain.RoleStoreOwner {
		return details, nil
	}

	store, err := s.stores.FindByOwner(ctx, account.ID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return details, nil
		}
		return nil, err
	}

	agg, err := s.ratings.AverageForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	if agg.Count > 0 {
		avg := agg.Average
		details.AverageRating = &avg
		details.RatingCount = agg.Count
	}
	return details, nil
}
