package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skyps2003/Freelancer/internal/models"
)

type MessageStore struct {
	mu       sync.RWMutex
	messages []*models.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) Create(ctx context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	cp := *m
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *MessageStore) Thread(ctx context.Context, a, b string) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Message
	for _, m := range s.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			cp := *m
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *MessageStore) ListForUser(ctx context.Context, userID string) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Message
	for _, m := range s.messages {
		if m.Sender == userID || m.Receiver == userID {
			cp := *m
			result = append(result, &cp)
		}
	}
	// Newest first; equal timestamps fall back to ID order so the derived
	// conversation list is deterministic.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}
