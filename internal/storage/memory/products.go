package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]*models.Product)}
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = models.ProductAvailable
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *ProductStore) List(ctx context.Context, f storage.ProductFilter) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Product
	for _, p := range s.products {
		if f.Category != "" && f.Category != "Todo" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *ProductStore) ListBySeller(ctx context.Context, sellerID string) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Product
	for _, p := range s.products {
		if p.Seller == sellerID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *ProductStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.Status = status
	return nil
}

func matchesSearch(p *models.Product, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
