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

type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[string]*models.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{transactions: make(map[string]*models.Transaction)}
}

func (s *TransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	cp := *t
	s.transactions[t.ID] = &cp
	return nil
}

func (s *TransactionStore) ListApprovedByBuyer(ctx context.Context, buyerID string) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Transaction
	for _, t := range s.transactions {
		if t.BuyerID == buyerID && t.Status == models.TxApproved {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (s *TransactionStore) CountApprovedBySeller(ctx context.Context, sellerID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, t := range s.transactions {
		if t.SellerID == sellerID && t.Status == models.TxApproved {
			count++
		}
	}
	return count, nil
}

func (s *TransactionStore) GetApprovedByProduct(ctx context.Context, productID string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ProductID == productID && t.Status == models.TxApproved {
			cp := *t
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}
