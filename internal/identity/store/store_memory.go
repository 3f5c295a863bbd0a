// Package store persists identity registry state.
package store

import (
	"context"
	"sort"
	"sync"

	"landregistry/internal/identity/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
)

// InMemoryStore keeps identity state in process. It is a ledger participant:
// Snapshot deep-copies everything so an aborted operation restores it.
type InMemoryStore struct {
	mu    sync.RWMutex
	state memoryState
}

type memoryState struct {
	users       map[id.AccountID]models.User
	nationalIDs map[string]id.AccountID
	taxIDs      map[string]id.AccountID
	roles       map[id.AccountID]map[id.Role]struct{}
	inspectors  map[id.InspectorID]models.Inspector
	byAccount   map[id.AccountID]id.InspectorID
	owner       id.AccountID
	paused      bool
}

func newMemoryState() memoryState {
	return memoryState{
		users:       make(map[id.AccountID]models.User),
		nationalIDs: make(map[string]id.AccountID),
		taxIDs:      make(map[string]id.AccountID),
		roles:       make(map[id.AccountID]map[id.Role]struct{}),
		inspectors:  make(map[id.InspectorID]models.Inspector),
		byAccount:   make(map[id.AccountID]id.InspectorID),
	}
}

func (st memoryState) clone() memoryState {
	c := newMemoryState()
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.nationalIDs {
		c.nationalIDs[k] = v
	}
	for k, v := range st.taxIDs {
		c.taxIDs[k] = v
	}
	for k, set := range st.roles {
		copied := make(map[id.Role]struct{}, len(set))
		for r := range set {
			copied[r] = struct{}{}
		}
		c.roles[k] = copied
	}
	for k, v := range st.inspectors {
		c.inspectors[k] = v
	}
	for k, v := range st.byAccount {
		c.byAccount[k] = v
	}
	c.owner = st.owner
	c.paused = st.paused
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

func (s *InMemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.users[user.Account]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := s.state.nationalIDs[user.NationalID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := s.state.taxIDs[user.TaxID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.state.users[user.Account] = copyUser(user)
	s.state.nationalIDs[user.NationalID] = user.Account
	s.state.taxIDs[user.TaxID] = user.Account
	return nil
}

func (s *InMemoryStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.users[user.Account]; !ok {
		return sentinel.ErrNotFound
	}
	s.state.users[user.Account] = copyUser(user)
	return nil
}

func (s *InMemoryStore) FindUser(_ context.Context, account id.AccountID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.users[account]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := copyUser(&u)
	return &out, nil
}

func (s *InMemoryStore) NationalIDTaken(_ context.Context, nationalID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.state.nationalIDs[nationalID]
	return ok, nil
}

func (s *InMemoryStore) TaxIDTaken(_ context.Context, taxID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.state.taxIDs[taxID]
	return ok, nil
}

func (s *InMemoryStore) GrantRole(_ context.Context, account id.AccountID, role id.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.state.roles[account]
	if !ok {
		set = make(map[id.Role]struct{})
		s.state.roles[account] = set
	}
	if _, held := set[role]; held {
		return false, nil
	}
	set[role] = struct{}{}
	return true, nil
}

func (s *InMemoryStore) RevokeRole(_ context.Context, account id.AccountID, role id.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.state.roles[account]
	if _, held := set[role]; !held {
		return false, nil
	}
	delete(set, role)
	return true, nil
}

func (s *InMemoryStore) HasRole(_ context.Context, account id.AccountID, role id.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, held := s.state.roles[account][role]
	return held, nil
}

func (s *InMemoryStore) ListRoles(_ context.Context, account id.AccountID) ([]id.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]id.Role, 0, len(s.state.roles[account]))
	for _, r := range id.Roles {
		if _, held := s.state.roles[account][r]; held {
			roles = append(roles, r)
		}
	}
	return roles, nil
}

func (s *InMemoryStore) CreateInspector(_ context.Context, inspector *models.Inspector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.byAccount[inspector.Account]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.state.inspectors[inspector.ID] = *inspector
	s.state.byAccount[inspector.Account] = inspector.ID
	return nil
}

func (s *InMemoryStore) DeleteInspector(_ context.Context, account id.AccountID) (*models.Inspector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inspectorID, ok := s.state.byAccount[account]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	removed := s.state.inspectors[inspectorID]
	delete(s.state.inspectors, inspectorID)
	delete(s.state.byAccount, account)
	return &removed, nil
}

func (s *InMemoryStore) FindInspector(_ context.Context, inspectorID id.InspectorID) (*models.Inspector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inspector, ok := s.state.inspectors[inspectorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &inspector, nil
}

func (s *InMemoryStore) FindInspectorByAccount(_ context.Context, account id.AccountID) (*models.Inspector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inspectorID, ok := s.state.byAccount[account]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	inspector := s.state.inspectors[inspectorID]
	return &inspector, nil
}

func (s *InMemoryStore) ListInspectors(_ context.Context) ([]*models.Inspector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Inspector, 0, len(s.state.inspectors))
	for _, inspector := range s.state.inspectors {
		out = append(out, &inspector)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Owner(_ context.Context) (id.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.owner, nil
}

func (s *InMemoryStore) SetOwner(_ context.Context, owner id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.owner = owner
	return nil
}

func (s *InMemoryStore) Paused(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.paused, nil
}

func (s *InMemoryStore) SetPaused(_ context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.paused = paused
	return nil
}

func copyUser(u *models.User) models.User {
	out := *u
	if u.VerifiedAt != nil {
		t := *u.VerifiedAt
		out.VerifiedAt = &t
	}
	return out
}
