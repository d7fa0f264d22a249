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

type ProjectStore struct {
	col *mongo.Collection
}

func NewProjectStore(db *mongo.Database) *ProjectStore {
	return &ProjectStore{col: db.Collection("projects")}
}

func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.ProjectPendiente
	}
	_, err := s.col.InsertOne(ctx, p)
	return err
}

func (s *ProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectStore) ListByCompany(ctx context.Context, companyID string) ([]*models.Project, error) {
	return s.find(ctx, bson.M{"company_id": companyID})
}

func (s *ProjectStore) ListByStatus(ctx context.Context, statuses []string) ([]*models.Project, error) {
	return s.find(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

func (s *ProjectStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *ProjectStore) find(ctx context.Context, filter bson.M) ([]*models.Project, error) {
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var result []*models.Project
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
