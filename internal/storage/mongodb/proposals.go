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

type ProposalStore struct {
	col *mongo.Collection
}

func NewProposalStore(db *mongo.Database) *ProposalStore {
	return &ProposalStore{col: db.Collection("proposals")}
}

func (s *ProposalStore) Create(ctx context.Context, p *models.Proposal) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.ProposalEspera
	}
	_, err := s.col.InsertOne(ctx, p)
	return err
}

func (s *ProposalStore) GetByID(ctx context.Context, id string) (*models.Proposal, error) {
	var p models.Proposal
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProposalStore) ListByProject(ctx context.Context, projectID string) ([]*models.Proposal, error) {
	cur, err := s.col.Find(ctx, bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var result []*models.Proposal
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ProposalStore) FindByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (*models.Proposal, error) {
	var p models.Proposal
	err := s.col.FindOne(ctx, bson.M{"project_id": projectID, "freelancer_id": freelancerID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProposalStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
