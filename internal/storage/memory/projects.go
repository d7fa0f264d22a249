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

type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*models.Project
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]*models.Project)}
}

func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.ProjectPendiente
	}
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *ProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *ProjectStore) ListByCompany(ctx context.Context, companyID string) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Project
	for _, p := range s.projects {
		if p.CompanyID == companyID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sortProjectsByNewest(result)
	return result, nil
}

func (s *ProjectStore) ListByStatus(ctx context.Context, statuses []string) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	var result []*models.Project
	for _, p := range s.projects {
		if want[p.Status] {
			cp := *p
			result = append(result, &cp)
		}
	}
	sortProjectsByNewest(result)
	return result, nil
}

func (s *ProjectStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.Status = status
	return nil
}

func sortProjectsByNewest(projects []*models.Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}
