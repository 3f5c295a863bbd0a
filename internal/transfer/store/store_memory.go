// Package store persists purchase requests and transaction history.
package store

import (
	"context"
	"slices"
	"sync"

	"landregistry/internal/transfer/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
)

// InMemoryStore is a ledger participant. Request ids are appended to the
// buyer and land indexes in creation order.
type InMemoryStore struct {
	mu    sync.RWMutex
	state memoryState
}

type memoryState struct {
	requests     map[id.RequestID]models.PurchaseRequest
	byBuyer      map[id.AccountID][]id.RequestID
	byLand       map[id.LandID][]id.RequestID
	transactions map[id.AccountID][]models.Transaction
}

func newMemoryState() memoryState {
	return memoryState{
		requests:     make(map[id.RequestID]models.PurchaseRequest),
		byBuyer:      make(map[id.AccountID][]id.RequestID),
		byLand:       make(map[id.LandID][]id.RequestID),
		transactions: make(map[id.AccountID][]models.Transaction),
	}
}

// clone clips the append-only index slices so post-snapshot appends never
// write into the saved backing arrays.
func (st memoryState) clone() memoryState {
	c := newMemoryState()
	for k, v := range st.requests {
		c.requests[k] = v
	}
	for k, v := range st.byBuyer {
		c.byBuyer[k] = slices.Clip(v)
	}
	for k, v := range st.byLand {
		c.byLand[k] = slices.Clip(v)
	}
	for k, v := range st.transactions {
		c.transactions[k] = slices.Clip(v)
	}
	return c
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{state: newMemoryState()}
}

func (s *InMemoryStore) Snapshot() func() {
	s.mu.RLock()
	saved := s.state.clone()
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = saved
	}
}

func (s *InMemoryStore) CreateRequest(_ context.Context, req *models.PurchaseRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.requests[req.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.state.requests[req.ID] = *req
	s.state.byBuyer[req.Buyer] = append(s.state.byBuyer[req.Buyer], req.ID)
	s.state.byLand[req.LandID] = append(s.state.byLand[req.LandID], req.ID)
	return nil
}

func (s *InMemoryStore) UpdateRequest(_ context.Context, req *models.PurchaseRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.requests[req.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.state.requests[req.ID] = *req
	return nil
}

func (s *InMemoryStore) FindRequest(_ context.Context, requestID id.RequestID) (*models.PurchaseRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.state.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &req, nil
}

func (s *InMemoryStore) ListRequestsByBuyer(_ context.Context, buyer id.AccountID) ([]*models.PurchaseRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.state.byBuyer[buyer]), nil
}

func (s *InMemoryStore) ListRequestsByLand(_ context.Context, landID id.LandID) ([]*models.PurchaseRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(s.state.byLand[landID]), nil
}

func (s *InMemoryStore) resolve(ids []id.RequestID) []*models.PurchaseRequest {
	out := make([]*models.PurchaseRequest, 0, len(ids))
	for _, requestID := range ids {
		req := s.state.requests[requestID]
		out = append(out, &req)
	}
	return out
}

func (s *InMemoryStore) AppendTransaction(_ context.Context, account id.AccountID, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.transactions[account] = append(s.state.transactions[account], tx)
	return nil
}

func (s *InMemoryStore) ListTransactions(_ context.Context, account id.AccountID) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.transactions[account]), nil
}
