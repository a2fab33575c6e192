package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

const ratingsCollection = "ratings"

type RatingRepository struct {
	coll *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{coll: db.Collection(ratingsCollection)}
}

type mongoRating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	StoreID   string             `bson:"store_id"`
	Score     int                `bson:"score"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m mongoRating) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		Score:     m.Score,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the unique compound (user_id, store_id) index that
// guarantees at most one rating per pair even under concurrent upserts.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "store_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Upsert inserts or updates the rating keyed by (userID, storeID) in a
// single FindOneAndUpdate. Two concurrent upserts for the same new key can
// race on the unique index: the loser gets a duplicate-key error and is
// retried once, taking the update path.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID string, score int) (bool, error) {
	created, err := r.upsertOnce(ctx, userID, storeID, score)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		created, err = r.upsertOnce(ctx, userID, storeID, score)
	}
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}
	return created, nil
}

func (r *RatingRepository) upsertOnce(ctx context.Context, userID, storeID string, score int) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID, "store_id": storeID}
	update := bson.M{
		"$set":         bson.M{"score": score, "updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "store_id": storeID, "created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		// No prior document: the upsert inserted a new rating.
		return true, nil
	}
	return false, err
}

func (r *RatingRepository) UpdateOwned(ctx context.Context, ratingID, userID string, score int) error {
	oid, err := primitive.ObjectIDFromHex(ratingID)
	if err != nil {
		return domain.ErrRatingNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"score": score, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepository) DeleteOwned(ctx context.Context, ratingID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(ratingID)
	if err != nil {
		return domain.ErrRatingNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Rating, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *RatingRepository) ListByStore(ctx context.Context, storeID string) ([]*domain.Rating, error) {
	return r.find(ctx, bson.M{"store_id": storeID})
}

func (r *RatingRepository) find(ctx context.Context, query bson.M) ([]*domain.Rating, error) {
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Rating
	for cur.Next(ctx) {
		var m mongoRating
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		out = append(out, m.toDomain())
	}
	return out, cur.Err()
}

// AverageByStore computes the mean score server-side with an aggregation
// pipeline. Rounding is the service layer's concern.
func (r *RatingRepository) AverageByStore(ctx context.Context, storeID string) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": storeID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$score"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("average rating: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("decode average: %w", err)
		}
	}
	return result.Avg, result.Count, cur.Err()
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
