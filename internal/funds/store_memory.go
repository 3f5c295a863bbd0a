package funds

import (
	"context"
	"maps"
	"math"
	"sync"

	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
)

// InMemoryStore is a ledger participant holding balances in process.
type InMemoryStore struct {
	mu       sync.RWMutex
	balances map[id.AccountID]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{balances: make(map[id.AccountID]int64)}
}

func (s *InMemoryStore) Snapshot() func() {
	s.mu.RLock()
	saved := maps.Clone(s.balances)
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.balances = saved
	}
}

func (s *InMemoryStore) Balance(_ context.Context, account id.AccountID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[account], nil
}

func (s *InMemoryStore) Credit(_ context.Context, account id.AccountID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[account] > math.MaxInt64-amount {
		return sentinel.ErrBalanceOverflow
	}
	s.balances[account] += amount
	return nil
}

func (s *InMemoryStore) Debit(_ context.Context, account id.AccountID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[account] < amount {
		return sentinel.ErrInsufficientFunds
	}
	s.balances[account] -= amount
	return nil
}
