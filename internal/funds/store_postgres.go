package funds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"landregistry/internal/platform/postgres"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
	txcontext "landregistry/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Balance(ctx context.Context, account id.AccountID) (int64, error) {
	var amount int64
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT amount FROM balances WHERE account = $1`, uuid.UUID(account)).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return amount, nil
}

func (s *PostgresStore) Credit(ctx context.Context, account id.AccountID, amount int64) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO balances (account, amount) VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET amount = balances.amount + EXCLUDED.amount
	`, uuid.UUID(account), amount)
	if postgres.IsNumericOverflow(err) {
		return sentinel.ErrBalanceOverflow
	}
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}

// Debit only matches rows that can cover amount, so zero rows affected means
// insufficient funds.
func (s *PostgresStore) Debit(ctx context.Context, account id.AccountID, amount int64) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE balances SET amount = amount - $2
		WHERE account = $1 AND amount >= $2
	`, uuid.UUID(account), amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if n == 0 {
		return sentinel.ErrInsufficientFunds
	}
	return nil
}
