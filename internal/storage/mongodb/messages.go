package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skyps2003/Freelancer/internal/models"
)

type MessageStore struct {
	col *mongo.Collection
}

func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{col: db.Collection("messages")}
}

func (s *MessageStore) Create(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, m)
	return err
}

func (s *MessageStore) Thread(ctx context.Context, a, b string) ([]*models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": a, "receiver": b},
		bson.M{"sender": b, "receiver": a},
	}}
	return s.find(ctx, filter, bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *MessageStore) ListForUser(ctx context.Context, userID string) ([]*models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": userID},
		bson.M{"receiver": userID},
	}}
	// The secondary _id sort keeps the conversation derivation deterministic
	// when two messages share a timestamp.
	return s.find(ctx, filter, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func (s *MessageStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]*models.Message, error) {
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var result []*models.Message
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
