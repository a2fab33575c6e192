package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.Account // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == account.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneAccount(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneAccount(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Account)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneAccount(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, role string) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Account
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, cloneAccount(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// --- store repository stub ---

type stubStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*domain.Store
	nextID int
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: make(map[string]*domain.Store)}
}

func cloneStore(s *domain.Store) *domain.Store {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubStoreRepo) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stores {
		if s.Email == store.Email {
			return nil, domain.ErrStoreExists
		}
	}
	r.nextID++
	copy := cloneStore(store)
	copy.ID = fmt.Sprintf("s%d", r.nextID)
	r.stores[copy.ID] = cloneStore(copy)
	return cloneStore(copy), nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[id]; ok {
		return cloneStore(s), nil
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			return cloneStore(s), nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Store
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			out = append(out, cloneStore(s))
		}
	}
	return out, nil
}

func (r *stubStoreRepo) List(_ context.Context, filter ports.StoreFilter) ([]*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Store
	for _, s := range r.stores {
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Address != "" && !strings.Contains(strings.ToLower(s.Address), strings.ToLower(filter.Address)) {
			continue
		}
		out = append(out, cloneStore(s))
	}
	return out, nil
}

func (r *stubStoreRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.stores)), nil
}

// --- rating repository stub ---

// stubRatingRepo serializes every operation with a mutex, mirroring the
// atomicity the unique (user_id, store_id) index provides in MongoDB.
type stubRatingRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Rating
	byKey  map[string]*domain.Rating
	nextID int
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{
		byID:  make(map[string]*domain.Rating),
		byKey: make(map[string]*domain.Rating),
	}
}

func ratingKey(userID, storeID string) string {
	return userID + "|" + storeID
}

func (r *stubRatingRepo) Upsert(_ context.Context, userID, storeID string, score int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ratingKey(userID, storeID)
	if existing, ok := r.byKey[key]; ok {
		existing.Score = score
		return false, nil
	}
	r.nextID++
	rating := &domain.Rating{
		ID:      fmt.Sprintf("r%d", r.nextID),
		UserID:  userID,
		StoreID: storeID,
		Score:   score,
	}
	r.byID[rating.ID] = rating
	r.byKey[key] = rating
	return true, nil
}

func (r *stubRatingRepo) UpdateOwned(_ context.Context, ratingID, userID string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.byID[ratingID]
	if !ok || rating.UserID != userID {
		return domain.ErrRatingNotFound
	}
	rating.Score = score
	return nil
}

func (r *stubRatingRepo) DeleteOwned(_ context.Context, ratingID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.byID[ratingID]
	if !ok || rating.UserID != userID {
		return domain.ErrRatingNotFound
	}
	delete(r.byID, ratingID)
	delete(r.byKey, ratingKey(rating.UserID, rating.StoreID))
	return nil
}

func (r *stubRatingRepo) ListByUser(_ context.Context, userID string) ([]*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Rating
	for _, rating := range r.byID {
		if rating.UserID == userID {
			clone := *rating
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) ListByStore(_ context.Context, storeID string) ([]*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Rating
	for _, rating := range r.byID {
		if rating.StoreID == storeID {
			clone := *rating
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) AverageByStore(_ context.Context, storeID string) (float64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int64
	for _, rating := range r.byID {
		if rating.StoreID == storeID {
			sum += int64(rating.Score)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *stubRatingRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}
