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

type OfferStore struct {
	col *mongo.Collection
}

func NewOfferStore(db *mongo.Database) *OfferStore {
	return &OfferStore{col: db.Collection("offers")}
}

func (s *OfferStore) Create(ctx context.Context, o *models.Offer) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = models.OfferOpen
	}
	if o.Applicants == nil {
		o.Applicants = []models.Applicant{}
	}
	_, err := s.col.InsertOne(ctx, o)
	return err
}

func (s *OfferStore) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	var o models.Offer
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OfferStore) List(ctx context.Context) ([]*models.Offer, error) {
	return s.find(ctx, bson.M{})
}

func (s *OfferStore) ListByEmployer(ctx context.Context, employerID string) ([]*models.Offer, error) {
	return s.find(ctx, bson.M{"employer": employerID})
}

func (s *OfferStore) AddApplicant(ctx context.Context, offerID string, a models.Applicant) ([]models.Applicant, error) {
	// Prepend so the newest application lists first.
	update := bson.M{"$push": bson.M{"applicants": bson.M{
		"$each":     bson.A{a},
		"$position": 0,
	}}}
	var o models.Offer
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": offerID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o.Applicants, nil
}

func (s *OfferStore) find(ctx context.Context, filter bson.M) ([]*models.Offer, error) {
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var result []*models.Offer
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
