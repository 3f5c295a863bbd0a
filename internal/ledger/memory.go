package ledger

import (
	"context"
	"sync"
)

// Participant is an in-memory store that can roll itself back. Snapshot is
// called with the ledger's write lock held and returns a closure restoring
// the captured state.
type Participant interface {
	Snapshot() (restore func())
}

// Memory is the in-process ledger. A single RWMutex gives writers the global
// total order and keeps readers off half-applied state.
//
// Every RunInTx snapshots every registered participant up front, and the
// map-backed stores snapshot by copying their maps, so a mutation costs
// O(total in-memory state). Anything beyond tests and single-node demos
// belongs on the Postgres ledger.
type Memory struct {
	mu           sync.RWMutex
	participants []Participant
	cfg          config
}

type (
	memoryTxKey   struct{}
	memoryViewKey struct{}
)

func NewMemory(opts ...Option) *Memory {
	return &Memory{cfg: newConfig(opts)}
}

// Register adds stores whose writes must be undone when a transaction fails.
// Call during wiring, before serving traffic.
func (m *Memory) Register(participants ...Participant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants = append(m.participants, participants...)
}

func (m *Memory) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(memoryTxKey{}).(*Memory)
	return ok && owner == m
}

func (m *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if m.inTx(ctx) {
		return fn(ctx)
	}

	ctx, cancel, err := m.cfg.prepare(ctx)
	defer cancel()
	if err != nil {
		return err
	}
	ctx, span := startSpan(ctx, "ledger.run_in_tx", "memory")
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	restores := make([]func(), 0, len(m.participants))
	for _, p := range m.participants {
		restores = append(restores, p.Snapshot())
	}
	rollback := func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, memoryTxKey{}, m)); err != nil {
		rollback()
		return err
	}
	return nil
}

func (m *Memory) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.inTx(ctx) {
		return fn(ctx)
	}
	if owner, ok := ctx.Value(memoryViewKey{}).(*Memory); ok && owner == m {
		return fn(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(context.WithValue(ctx, memoryViewKey{}, m))
}

// MemorySequencer keeps counters outside any participant so an aborted
// transaction never hands the same identifier out twice.
type MemorySequencer struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{counters: make(map[string]uint64)}
}

func (s *MemorySequencer) Next(_ context.Context, name string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	return s.counters[name], nil
}
