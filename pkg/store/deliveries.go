package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Delivery is a reminder message sent by the bot.
type Delivery struct {
	ID             primitive.ObjectID `bson:"_id"`
	MessageID      string             `bson:"messageId"`
	ChannelID      string             `bson:"channelId"`
	UserID         string             `bson:"userId"`
	Text           string             `bson:"text"`
	Repeat         bool               `bson:"repeat"`
	SentAt         time.Time          `bson:"sentAt"`
	AcknowledgedAt *time.Time         `bson:"acknowledgedAt,omitempty"`
}

// RecordDelivery stores a delivery. An ID is generated when missing.
func (s *Store) RecordDelivery(ctx context.Context, d Delivery) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}

	if _, err := s.deliveries.InsertOne(ctx, d); err != nil {
		if isMongoDBDuplicateError(err) {
			return ConflictError{Err: fmt.Errorf("message %q already recorded", d.MessageID)}
		}

		return fmt.Errorf("insert delivery: %w", err)
	}

	return nil
}

// AcknowledgeDelivery marks the delivery of the given message as acknowledged by the given user.
func (s *Store) AcknowledgeDelivery(ctx context.Context, messageID, userID string, at time.Time) error {
	filter := bson.D{
		{Key: "messageId", Value: messageID},
		{Key: "userId", Value: userID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "acknowledgedAt", Value: at}}}}

	res, err := s.deliveries.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}

	if res.MatchedCount == 0 {
		return NotFoundError{Err: fmt.Errorf("delivery of message %q", messageID)}
	}

	return nil
}

// ListDeliveriesByUser lists the latest deliveries for the given user, newest first.
func (s *Store) ListDeliveriesByUser(ctx context.Context, userID string, limit int) ([]Delivery, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}}).
		SetLimit(int64(limit))

	res, err := s.deliveries.Find(ctx, bson.D{{Key: "userId", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find deliveries: %w", err)
	}

	var deliveries []Delivery
	if err = res.All(ctx, &deliveries); err != nil {
		return nil, fmt.Errorf("decode deliveries: %w", err)
	}

	return deliveries, nil
}
