// Package funds keeps native value balances. Deposits stand in for value the
// execution host would otherwise attach to a call; transfers move value
// between accounts inside the caller's ledger transaction.
package funds

import (
	"context"
	"errors"
	"log/slog"

	"landregistry/internal/access"
	"landregistry/internal/ledger"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
	"landregistry/pkg/platform/sentinel"
)

// Store holds balances. Debit returns sentinel.ErrInsufficientFunds instead
// of going negative.
type Store interface {
	Balance(ctx context.Context, account id.AccountID) (int64, error)
	Credit(ctx context.Context, account id.AccountID, amount int64) error
	Debit(ctx context.Context, account id.AccountID, amount int64) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	ledger         ledger.Ledger
	guard          *access.Guard
	auditPublisher AuditPublisher
	logger         *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(store Store, l ledger.Ledger, guard *access.Guard, opts ...Option) *Service {
	s := &Service{store: store, ledger: l, guard: guard}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Deposit credits account with amount. ADMIN only.
func (s *Service) Deposit(ctx context.Context, account id.AccountID, amount int64) error {
	if account.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "account is required")
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")
	}
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Role(id.RoleAdmin)); err != nil {
			return err
		}
		if err := s.credit(ctx, account, amount); err != nil {
			return err
		}
		if s.auditPublisher == nil {
			return nil
		}
		return s.auditPublisher.Emit(ctx, audit.Event{
			Action:  string(audit.EventFundsDeposited),
			Subject: account.String(),
		})
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "funds deposited", "account_id", account.String(), "amount", amount)
	return nil
}

func (s *Service) Balance(ctx context.Context, account id.AccountID) (int64, error) {
	var balance int64
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.store.Balance(ctx, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read balance")
		}
		return nil
	})
	return balance, err
}

// Transfer moves amount from one account to another. It performs no
// authorization of its own: callers run it inside their already-authorized
// transaction so the value moves together with their state change.
func (s *Service) Transfer(ctx context.Context, from, to id.AccountID, amount int64) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")
	}
	return s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Debit(ctx, from, amount); err != nil {
			if errors.Is(err, sentinel.ErrInsufficientFunds) {
				return dErrors.New(dErrors.CodeValidation, "insufficient funds")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit account")
		}
		return s.credit(ctx, to, amount)
	})
}

func (s *Service) credit(ctx context.Context, account id.AccountID, amount int64) error {
	err := s.store.Credit(ctx, account, amount)
	if errors.Is(err, sentinel.ErrBalanceOverflow) {
		return dErrors.New(dErrors.CodeValidation, "balance overflow")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit account")
	}
	return nil
}
