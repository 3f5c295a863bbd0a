package ledger

import (
	"context"
	"database/sql"
	"fmt"

	txcontext "landregistry/pkg/platform/tx"
)

// globalLockKey is the advisory lock that linearizes all mutations across
// every registry table.
const globalLockKey int64 = 0x4c414e44 // "LAND"

// Postgres runs each operation in one database transaction that first takes
// a transaction-scoped advisory lock. Stores pick the transaction up from the
// context through pkg/platform/tx.
type Postgres struct {
	db  *sql.DB
	cfg config
}

func NewPostgres(db *sql.DB, opts ...Option) *Postgres {
	return &Postgres{db: db, cfg: newConfig(opts)}
}

func (p *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}

	ctx, cancel, err := p.cfg.prepare(ctx)
	defer cancel()
	if err != nil {
		return err
	}
	ctx, span := startSpan(ctx, "ledger.run_in_tx", "postgres")
	defer func() { endSpan(span, err) }()

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, globalLockKey); err != nil {
		return fmt.Errorf("acquire ledger lock: %w", err)
	}

	if err = fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// View reads from a read-only repeatable-read snapshot so multi-query reads
// see one consistent committed state.
func (p *Postgres) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	return fn(txcontext.WithTx(ctx, tx))
}

// PostgresSequencer increments counters on its own autocommit connection,
// outside the caller's transaction, so rolled-back operations still burn
// their identifiers. The pool needs at least two connections.
type PostgresSequencer struct {
	db *sql.DB
}

func NewPostgresSequencer(db *sql.DB) *PostgresSequencer {
	return &PostgresSequencer{db: db}
}

func (s *PostgresSequencer) Next(ctx context.Context, name string) (uint64, error) {
	var next int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, name).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", name, err)
	}
	return uint64(next), nil
}
