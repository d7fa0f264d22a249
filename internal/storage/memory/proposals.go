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

type ProposalStore struct {
	mu        sync.RWMutex
	proposals map[string]*models.Proposal
}

func NewProposalStore() *ProposalStore {
	return &ProposalStore{proposals: make(map[string]*models.Proposal)}
}

func (s *ProposalStore) Create(ctx context.Context, p *models.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.ProposalEspera
	}
	cp := *p
	s.proposals[p.ID] = &cp
	return nil
}

func (s *ProposalStore) GetByID(ctx context.Context, id string) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *ProposalStore) ListByProject(ctx context.Context, projectID string) ([]*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Proposal
	for _, p := range s.proposals {
		if p.ProjectID == projectID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *ProposalStore) FindByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.proposals {
		if p.ProjectID == projectID && p.FreelancerID == freelancerID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *ProposalStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.Status = status
	return nil
}
