package readlist

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound      = errors.New("not in read list")
	ErrAlreadyExists = errors.New("already in read list")
	ErrValidation    = errors.New("missing fields")
)

// Item is a title saved by a user. (UserID, Provider, ProviderID) is unique.
type Item struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     int64              `json:"userId" bson:"user_id"`
	Provider   string             `json:"provider" bson:"provider"`
	ProviderID string             `json:"providerId" bson:"provider_id"`
	Title      string             `json:"title" bson:"title"`
	Poster     string             `json:"poster,omitempty" bson:"poster,omitempty"`
	Color      string             `json:"color,omitempty" bson:"color,omitempty"`
	Type       string             `json:"type,omitempty" bson:"type,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, item *Item) error
	FindOne(ctx context.Context, userID int64, provider, providerID string) (*Item, error)
	ListByUser(ctx context.Context, userID int64) ([]*Item, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
