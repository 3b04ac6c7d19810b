package readlist

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "read_items"

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection(collectionName),
	}
}

// EnsureIndexes creates the unique (user, provider, provider id) index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "provider", Value: 1},
			{Key: "provider_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("user_provider_item"),
	})
	if err != nil {
		return fmt.Errorf("failed to create read list index: %w", err)
	}
	return nil
}

func (r *MongoRepo) Create(ctx context.Context, item *Item) error {
	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert read list item: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}
	return nil
}

func (r *MongoRepo) FindOne(ctx context.Context, userID int64, provider, providerID string) (*Item, error) {
	var item Item

	err := r.collection.FindOne(ctx, bson.M{
		"user_id":     userID,
		"provider":    provider,
		"provider_id": providerID,
	}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch read list item: %w", err)
	}
	return &item, nil
}

// ListByUser returns the user's items, newest first.
func (r *MongoRepo) ListByUser(ctx context.Context, userID int64) ([]*Item, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list read list: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]*Item, 0)
	for cursor.Next(ctx) {
		var item Item
		if err := cursor.Decode(&item); err != nil {
			continue
		}
		items = append(items, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read read list cursor: %w", err)
	}
	return items, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete read list item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
