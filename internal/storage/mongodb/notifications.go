package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type NotificationStore struct {
	col *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *NotificationStore {
	return &NotificationStore{col: db.Collection("notifications")}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, n)
	return err
}

func (s *NotificationStore) ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error) {
	cur, err := s.col.Find(ctx, bson.M{"recipient": recipientID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var result []*models.Notification
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, bool, error) {
	// Return the pre-update document so the caller can tell whether this
	// call performed the false->true transition.
	var before models.Notification
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "recipient": recipientID},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, storage.ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}
	transitioned := !before.Read
	before.Read = true
	return &before, transitioned, nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"recipient": recipientID, "read": false})
}
