// Package store persists asset registry state.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"landregistry/internal/asset/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
)

// InMemoryStore keeps land records in process. It is a ledger participant.
type InMemoryStore struct {
	mu    sync.RWMutex
	state memoryState
}

type memoryState struct {
	lands     map[id.LandID]models.Land
	byOwner   map[id.AccountID]map[id.LandID]struct{}
	documents map[id.LandID][]models.Document
	history   map[id.LandID][]models.HistoryEntry
	contracts map[id.AccountID]time.Time
}

func newMemoryState() memoryState {
	return memoryState{
		lands:     make(map[id.LandID]models.Land),
		byOwner:   make(map[id.AccountID]map[id.LandID]struct{}),
		documents: make(map[id.LandID][]models.Document),
		history:   make(map[id.LandID][]models.HistoryEntry),
		contracts: make(map[id.AccountID]time.Time),
	}
}

// clone copies maps and slice headers. Slices are append-only, so sharing
// their backing arrays up to the saved length is safe.
func (st memoryState) clone() memoryState {
	c := newMemoryState()
	for k, v := range st.lands {
		c.lands[k] = v
	}
	for owner, set := range st.byOwner {
		copied := make(map[id.LandID]struct{}, len(set))
		for l := range set {
			copied[l] = struct{}{}
		}
		c.byOwner[owner] = copied
	}
	for k, v := range st.documents {
		c.documents[k] = slices.Clip(v)
	}
	for k, v := range st.history {
		c.history[k] = slices.Clip(v)
	}
	for k, v := range st.contracts {
		c.contracts[k] = v
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

func (s *InMemoryStore) CreateLand(_ context.Context, land *models.Land) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.lands[land.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.state.lands[land.ID] = *land
	s.index(land.Owner, land.ID)
	return nil
}

func (s *InMemoryStore) UpdateLand(_ context.Context, land *models.Land) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.state.lands[land.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Owner != land.Owner {
		delete(s.state.byOwner[current.Owner], land.ID)
		s.index(land.Owner, land.ID)
	}
	s.state.lands[land.ID] = *land
	return nil
}

func (s *InMemoryStore) index(owner id.AccountID, landID id.LandID) {
	set, ok := s.state.byOwner[owner]
	if !ok {
		set = make(map[id.LandID]struct{})
		s.state.byOwner[owner] = set
	}
	set[landID] = struct{}{}
}

func (s *InMemoryStore) FindLand(_ context.Context, landID id.LandID) (*models.Land, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	land, ok := s.state.lands[landID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &land, nil
}

func (s *InMemoryStore) ListLandsByOwner(_ context.Context, owner id.AccountID) ([]*models.Land, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Land, 0, len(s.state.byOwner[owner]))
	for landID := range s.state.byOwner[owner] {
		land := s.state.lands[landID]
		out = append(out, &land)
	}
	sortByID(out)
	return out, nil
}

func (s *InMemoryStore) ListLandsForSale(_ context.Context) ([]*models.Land, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Land
	for _, land := range s.state.lands {
		if land.ForSale {
			out = append(out, &land)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemoryStore) CountLands(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.lands), nil
}

func (s *InMemoryStore) AppendDocument(_ context.Context, landID id.LandID, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.documents[landID] = append(s.state.documents[landID], doc)
	return nil
}

func (s *InMemoryStore) ListDocuments(_ context.Context, landID id.LandID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.documents[landID]), nil
}

func (s *InMemoryStore) CountDocuments(_ context.Context, landID id.LandID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.documents[landID]), nil
}

func (s *InMemoryStore) AppendHistory(_ context.Context, landID id.LandID, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.history[landID] = append(s.state.history[landID], entry)
	return nil
}

func (s *InMemoryStore) ListHistory(_ context.Context, landID id.LandID) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.history[landID]), nil
}

func (s *InMemoryStore) AddContract(_ context.Context, account id.AccountID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.contracts[account]; ok {
		return false, nil
	}
	s.state.contracts[account] = at
	return true, nil
}

func (s *InMemoryStore) RemoveContract(_ context.Context, account id.AccountID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.contracts[account]; !ok {
		return false, nil
	}
	delete(s.state.contracts, account)
	return true, nil
}

func (s *InMemoryStore) IsContract(_ context.Context, account id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.state.contracts[account]
	return ok, nil
}

// ListContracts returns the allow-list ordered by authorization time.
func (s *InMemoryStore) ListContracts(_ context.Context) ([]id.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]id.AccountID, 0, len(s.state.contracts))
	for account := range s.state.contracts {
		out = append(out, account)
	}
	slices.SortFunc(out, func(a, b id.AccountID) int {
		if c := s.state.contracts[a].Compare(s.state.contracts[b]); c != 0 {
			return c
		}
		return compareAccounts(a, b)
	})
	return out, nil
}

func compareAccounts(a, b id.AccountID) int {
	return cmp.Compare(a.String(), b.String())
}

func sortByID(lands []*models.Land) {
	slices.SortFunc(lands, func(a, b *models.Land) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
