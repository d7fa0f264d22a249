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

type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]*models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: make(map[string]*models.Notification)}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *NotificationStore) ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Notification
	for _, n := range s.notifications {
		if n.Recipient == recipientID {
			cp := *n
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Recipient != recipientID {
		return nil, false, storage.ErrNotFound
	}
	transitioned := !n.Read
	n.Read = true
	cp := *n
	return &cp, transitioned, nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.notifications {
		if n.Recipient == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}
