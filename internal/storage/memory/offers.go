package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type OfferStore struct {
	mu     sync.RWMutex
	offers map[string]*models.Offer
}

func NewOfferStore() *OfferStore {
	return &OfferStore{offers: make(map[string]*models.Offer)}
}

func (s *OfferStore) Create(ctx context.Context, o *models.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = models.OfferOpen
	}
	cp := copyOffer(o)
	s.offers[o.ID] = cp
	return nil
}

func (s *OfferStore) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.offers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyOffer(o), nil
}

func (s *OfferStore) List(ctx context.Context) ([]*models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Offer
	for _, o := range s.offers {
		result = append(result, copyOffer(o))
	}
	sortOffersByNewest(result)
	return result, nil
}

func (s *OfferStore) ListByEmployer(ctx context.Context, employerID string) ([]*models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Offer
	for _, o := range s.offers {
		if o.Employer == employerID {
			result = append(result, copyOffer(o))
		}
	}
	sortOffersByNewest(result)
	return result, nil
}

func (s *OfferStore) AddApplicant(ctx context.Context, offerID string, a models.Applicant) ([]models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[offerID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	// Newest applications first, like the offer feed.
	o.Applicants = append([]models.Applicant{a}, o.Applicants...)
	return append([]models.Applicant(nil), o.Applicants...), nil
}

func copyOffer(o *models.Offer) *models.Offer {
	cp := *o
	cp.Applicants = append([]models.Applicant(nil), o.Applicants...)
	return &cp
}

func sortOffersByNewest(offers []*models.Offer) {
	sort.Slice(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
}
