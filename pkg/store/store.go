package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const deliveryCollection = "deliveries"

// Store represents the store.
type Store struct {
	client     *mongo.Client
	deliveries *mongo.Collection
}

// New creates a new Store.
func New(client *mongo.Client, database string) *Store {
	return &Store{
		client:     client,
		deliveries: client.Database(database).Collection(deliveryCollection),
	}
}

// Bootstrap creates the indexes.
func (s *Store) Bootstrap(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "messageId", Value: 1},
			},
			Options: options.Index().
				SetName("_uniq_message_id").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "sentAt", Value: -1},
			},
			Options: options.Index().
				SetName("_user_sent_at"),
		},
	}

	if _, err := s.deliveries.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create delivery indexes: %w", err)
	}

	return nil
}
