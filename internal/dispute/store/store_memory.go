// Package store persists disputes keyed by land.
package store

import (
	"context"
	"slices"
	"sync"

	"landregistry/internal/dispute/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
)

// InMemoryStore keeps each land's disputes in raise order. It is a ledger
// participant.
type InMemoryStore struct {
	mu     sync.RWMutex
	byLand map[id.LandID][]models.Dispute
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byLand: make(map[id.LandID][]models.Dispute)}
}

func (s *InMemoryStore) Snapshot() func() {
	s.mu.RLock()
	saved := make(map[id.LandID][]models.Dispute, len(s.byLand))
	for k, v := range s.byLand {
		saved[k] = slices.Clone(v)
	}
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byLand = saved
	}
}

func (s *InMemoryStore) CreateDispute(_ context.Context, d *models.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.find(d.LandID, d.ID); ok {
		return sentinel.ErrAlreadyUsed
	}
	s.byLand[d.LandID] = append(s.byLand[d.LandID], *d)
	return nil
}

func (s *InMemoryStore) UpdateDispute(_ context.Context, d *models.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.find(d.LandID, d.ID)
	if !ok {
		return sentinel.ErrNotFound
	}
	s.byLand[d.LandID][i] = *d
	return nil
}

func (s *InMemoryStore) FindDispute(_ context.Context, landID id.LandID, disputeID id.DisputeID) (*models.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.find(landID, disputeID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	d := s.byLand[landID][i]
	return &d, nil
}

func (s *InMemoryStore) find(landID id.LandID, disputeID id.DisputeID) (int, bool) {
	i := slices.IndexFunc(s.byLand[landID], func(d models.Dispute) bool {
		return d.ID == disputeID
	})
	return i, i >= 0
}

func (s *InMemoryStore) ListDisputes(_ context.Context, landID id.LandID) ([]*models.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.byLand[landID]
	out := make([]*models.Dispute, len(list))
	for i := range list {
		d := list[i]
		out[i] = &d
	}
	return out, nil
}

func (s *InMemoryStore) CountOpenDisputes(_ context.Context, landID id.LandID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, d := range s.byLand[landID] {
		if !d.Resolved {
			n++
		}
	}
	return n, nil
}
