package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

const storesCollection = "stores"

type StoreRepository struct {
	coll *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{coll: db.Collection(storesCollection)}
}

type mongoStore struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Address   string             `bson:"address"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m mongoStore) toDomain() *domain.Store {
	return &domain.Store{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Email:     m.Email,
		Address:   m.Address,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (r *StoreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	doc := mongoStore{
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStoreExists
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}

	created := *store
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	var m mongoStore
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return m.toDomain(), nil
}

func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	var m mongoStore
	if err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store by owner: %w", err)
	}
	return m.toDomain(), nil
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

// List filters by case-insensitive substring on name and address. Filter
// values are quoted so user input cannot inject regex syntax.
func (r *StoreRepository) List(ctx context.Context, filter ports.StoreFilter) ([]*domain.Store, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}}
	}
	if filter.Address != "" {
		query["address"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(filter.Address), Options: "i"}}
	}
	return r.find(ctx, query)
}

func (r *StoreRepository) find(ctx context.Context, query bson.M) ([]*domain.Store, error) {
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Store
	for cur.Next(ctx) {
		var m mongoStore
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode store: %w", err)
		}
		out = append(out, m.toDomain())
	}
	return out, cur.Err()
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
