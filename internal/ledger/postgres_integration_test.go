//go:build integration

package ledger_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"landregistry/internal/funds"
	"landregistry/internal/ledger"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/testutil/containers"
)

type PostgresLedgerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	ledger   *ledger.Postgres
	seq      *ledger.PostgresSequencer
	balances *funds.PostgresStore
}

func TestPostgresLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresLedgerSuite))
}

func (s *PostgresLedgerSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.ledger = ledger.NewPostgres(s.postgres.DB)
	s.seq = ledger.NewPostgresSequencer(s.postgres.DB)
	s.balances = funds.NewPostgres(s.postgres.DB)
}

func (s *PostgresLedgerSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "balances", "sequences"))
}

func (s *PostgresLedgerSuite) balance(account id.AccountID) int64 {
	var got int64
	s.Require().NoError(s.ledger.View(context.Background(), func(ctx context.Context) error {
		var err error
		got, err = s.balances.Balance(ctx, account)
		return err
	}))
	return got
}

func (s *PostgresLedgerSuite) TestCommitAndRollback() {
	ctx := context.Background()
	account := id.NewAccountID()

	s.Require().NoError(s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		return s.balances.Credit(ctx, account, 10)
	}))
	s.Equal(int64(10), s.balance(account))

	boom := errors.New("boom")
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.balances.Credit(ctx, account, 5); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)
	s.Equal(int64(10), s.balance(account), "rolled back credit must not persist")
}

func (s *PostgresLedgerSuite) TestCreditOverflowIsASentinel() {
	ctx := context.Background()
	account := id.NewAccountID()

	s.Require().NoError(s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		return s.balances.Credit(ctx, account, math.MaxInt64)
	}))
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		return s.balances.Credit(ctx, account, 10)
	})
	s.ErrorIs(err, sentinel.ErrBalanceOverflow)
	s.Equal(int64(math.MaxInt64), s.balance(account))
}

func (s *PostgresLedgerSuite) TestNestedRunJoinsOuterTransaction() {
	ctx := context.Background()
	account := id.NewAccountID()

	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
			return s.balances.Credit(ctx, account, 7)
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})
	s.Error(err)
	s.Equal(int64(0), s.balance(account))
}

func (s *PostgresLedgerSuite) TestSequencerBurnsIdentifiersOnRollback() {
	ctx := context.Background()

	_ = s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.seq.Next(ctx, "land")
		s.Require().NoError(err)
		s.Equal(uint64(1), n)
		return errors.New("abandon")
	})
	n, err := s.seq.Next(ctx, "land")
	s.Require().NoError(err)
	s.Equal(uint64(2), n)

	other, err := s.seq.Next(ctx, "dispute")
	s.Require().NoError(err)
	s.Equal(uint64(1), other, "sequences are independent")
}

func (s *PostgresLedgerSuite) TestConcurrentMutationsSerialize() {
	ctx := context.Background()
	account := id.NewAccountID()
	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.ledger.RunInTx(ctx, func(ctx context.Context) error {
				return s.balances.Credit(ctx, account, 1)
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}
	s.Equal(int64(workers), s.balance(account))
}
