package service

import (
	"context"
	"errors"
	"time"

	"landregistry/internal/identity/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

func now(ctx context.Context) time.Time {
	return requestcontext.Now(ctx)
}

// GetUser returns the record registered by account.
func (s *Service) GetUser(ctx context.Context, account id.AccountID) (*models.User, error) {
	var user *models.User
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.loadUser(ctx, account)
		return err
	})
	return user, err
}

// GetVerificationStatus returns {isRegistered, isVerified} for account. It
// never fails for unknown accounts.
func (s *Service) GetVerificationStatus(ctx context.Context, account id.AccountID) (models.VerificationStatus, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, account)
		switch {
		case err == nil:
			s.recordCacheRead("hit")
			return *cached, nil
		case errors.Is(err, sentinel.ErrNotFound):
			s.recordCacheRead("miss")
		default:
			s.recordCacheRead("error")
			s.logger.WarnContext(ctx, "status cache read failed", "account_id", account.String(), "error", err)
		}
	}

	var status models.VerificationStatus
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		user, err := s.store.FindUser(ctx, account)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
		}
		status = models.VerificationStatus{IsRegistered: true, IsVerified: user.Verified}
		return nil
	})
	if err != nil {
		return models.VerificationStatus{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, account, status); err != nil {
			s.logger.WarnContext(ctx, "status cache write failed", "account_id", account.String(), "error", err)
		}
	}
	return status, nil
}

// HasRole reports whether account holds role.
func (s *Service) HasRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error) {
	var has bool
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		has, err = s.store.HasRole(ctx, account, role)
		return err
	})
	return has, err
}

// GetRoles lists the roles account holds in a stable order.
func (s *Service) GetRoles(ctx context.Context, account id.AccountID) ([]id.Role, error) {
	var roles []id.Role
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		roles, err = s.store.ListRoles(ctx, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load roles")
		}
		return nil
	})
	return roles, err
}

// IsOwner reports whether account is the distinguished owner.
func (s *Service) IsOwner(ctx context.Context, account id.AccountID) (bool, error) {
	owner, err := s.Owner(ctx)
	if err != nil {
		return false, err
	}
	return !owner.IsNil() && owner == account, nil
}

func (s *Service) Owner(ctx context.Context) (id.AccountID, error) {
	var owner id.AccountID
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		owner, err = s.store.Owner(ctx)
		return err
	})
	return owner, err
}

func (s *Service) IsPaused(ctx context.Context) (bool, error) {
	var paused bool
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		paused, err = s.store.Paused(ctx)
		return err
	})
	return paused, err
}

func (s *Service) GetInspector(ctx context.Context, inspectorID id.InspectorID) (*models.Inspector, error) {
	var inspector *models.Inspector
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		inspector, err = s.store.FindInspector(ctx, inspectorID)
		return translateInspectorErr(err)
	})
	return inspector, err
}

func (s *Service) GetInspectorByAccount(ctx context.Context, account id.AccountID) (*models.Inspector, error) {
	var inspector *models.Inspector
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		inspector, err = s.store.FindInspectorByAccount(ctx, account)
		return translateInspectorErr(err)
	})
	return inspector, err
}

// ListInspectors returns the directory ordered by inspector id.
func (s *Service) ListInspectors(ctx context.Context) ([]*models.Inspector, error) {
	var inspectors []*models.Inspector
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		inspectors, err = s.store.ListInspectors(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list inspectors")
		}
		return nil
	})
	return inspectors, err
}

func translateInspectorErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "inspector not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load inspector")
}

func (s *Service) recordCacheRead(result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheRead(result)
	}
}
