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

type TransactionStore struct {
	col *mongo.Collection
}

func NewTransactionStore(db *mongo.Database) *TransactionStore {
	return &TransactionStore{col: db.Collection("transactions")}
}

func (s *TransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, t)
	return err
}

func (s *TransactionStore) ListApprovedByBuyer(ctx context.Context, buyerID string) ([]*models.Transaction, error) {
	cur, err := s.col.Find(ctx,
		bson.M{"buyer_id": buyerID, "status": models.TxApproved},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var result []*models.Transaction
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *TransactionStore) CountApprovedBySeller(ctx context.Context, sellerID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"seller_id": sellerID, "status": models.TxApproved})
}

func (s *TransactionStore) GetApprovedByProduct(ctx context.Context, productID string) (*models.Transaction, error) {
	var t models.Transaction
	err := s.col.FindOne(ctx, bson.M{"product_id": productID, "status": models.TxApproved}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
