package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type UserStore struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // lowercased email -> userID
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(u.Email)
	if _, ok := s.byEmail[email]; ok {
		return storage.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	s.users[u.ID] = &cp
	s.byEmail[email] = u.ID
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if !strings.EqualFold(old.Email, u.Email) {
		delete(s.byEmail, strings.ToLower(old.Email))
		s.byEmail[strings.ToLower(u.Email)] = u.ID
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *UserStore) AddToWallet(ctx context.Context, id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Wallet += amount
	return nil
}
