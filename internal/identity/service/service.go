// Package service implements the identity registry: user records, the
// account role map, the inspector directory, the distinguished owner and
// the global pause gate every other registry consults.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"landregistry/internal/access"
	"landregistry/internal/identity/metrics"
	"landregistry/internal/identity/models"
	"landregistry/internal/ledger"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
	"landregistry/pkg/platform/sentinel"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, account id.AccountID) (*models.User, error)
	NationalIDTaken(ctx context.Context, nationalID string) (bool, error)
	TaxIDTaken(ctx context.Context, taxID string) (bool, error)
}

type RoleStore interface {
	// GrantRole reports whether the role was newly added.
	GrantRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error)
	// RevokeRole reports whether the role was held.
	RevokeRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error)
	HasRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error)
	ListRoles(ctx context.Context, account id.AccountID) ([]id.Role, error)
}

type InspectorStore interface {
	CreateInspector(ctx context.Context, inspector *models.Inspector) error
	DeleteInspector(ctx context.Context, account id.AccountID) (*models.Inspector, error)
	FindInspector(ctx context.Context, inspectorID id.InspectorID) (*models.Inspector, error)
	FindInspectorByAccount(ctx context.Context, account id.AccountID) (*models.Inspector, error)
	ListInspectors(ctx context.Context) ([]*models.Inspector, error)
}

type SettingsStore interface {
	// Owner returns NilAccount before bootstrap.
	Owner(ctx context.Context) (id.AccountID, error)
	SetOwner(ctx context.Context, owner id.AccountID) error
	Paused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool) error
}

// Store is the full persistence surface of the identity registry.
type Store interface {
	UserStore
	RoleStore
	InspectorStore
	SettingsStore
}

// StatusCache caches the public verification status. Get returns
// sentinel.ErrNotFound on a miss. Status only advances (unregistered,
// registered, verified), and Set must never replace an entry with a less
// advanced one, so a read-through fill racing a commit cannot win.
type StatusCache interface {
	Get(ctx context.Context, account id.AccountID) (*models.VerificationStatus, error)
	Set(ctx context.Context, account id.AccountID, status models.VerificationStatus) error
	Invalidate(ctx context.Context, account id.AccountID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	HashSubjectID(value string) string
}

const inspectorSequence = "inspector"

// Service is the identity registry.
type Service struct {
	store          Store
	ledger         ledger.Ledger
	seq            ledger.Sequencer
	guard          *access.Guard
	cache          StatusCache
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
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

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithStatusCache enables read-through caching of verification status.
func WithStatusCache(cache StatusCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func New(store Store, l ledger.Ledger, seq ledger.Sequencer, opts ...Option) *Service {
	s := &Service{store: store, ledger: l, seq: seq}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.guard = access.NewGuard(s)
	return s
}

// Guard returns the capability check backed by this registry. Every other
// registry authorizes its mutations through it.
func (s *Service) Guard() *access.Guard {
	return s.guard
}

// Bootstrap installs the distinguished owner and grants it ADMIN. It runs
// once, at deploy time.
func (s *Service) Bootstrap(ctx context.Context, owner id.AccountID) error {
	if owner.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "owner is required")
	}
	return s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.store.Owner(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner")
		}
		if !current.IsNil() {
			return dErrors.New(dErrors.CodeInvalidState, "registry already bootstrapped")
		}
		if err := s.store.SetOwner(ctx, owner); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set owner")
		}
		if _, err := s.store.GrantRole(ctx, owner, id.RoleAdmin); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant admin role")
		}
		return s.emit(ctx, audit.Event{
			Action:  string(audit.EventRegistryBootstrapped),
			ActorID: owner,
			Subject: owner.String(),
		})
	})
}

// RegisterUser creates an unverified record for the caller and grants USER.
func (s *Service) RegisterUser(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	defer s.observe("register_user", time.Now())
	req.Normalize()

	var user *models.User
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		caller, err := s.guard.Mutation(ctx)
		if err != nil {
			return err
		}
		// Checked before validation: a second registration fails whatever the fields.
		if _, err := s.store.FindUser(ctx, caller); err == nil {
			return dErrors.New(dErrors.CodeInvalidState, "user already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
		}

		u, err := models.NewUser(caller, req, now(ctx))
		if err != nil {
			return err
		}
		if err := s.checkDocumentsUnique(ctx, u); err != nil {
			return err
		}
		if err := s.store.CreateUser(ctx, u); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeInvalidState, "user already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
		}
		if _, err := s.store.GrantRole(ctx, caller, id.RoleUser); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant user role")
		}
		user = u
		return s.emit(ctx, audit.Event{
			Action:        string(audit.EventUserRegistered),
			Subject:       caller.String(),
			SubjectIDHash: s.hash(u.NationalID),
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishStatus(ctx, user.Account, models.VerificationStatus{IsRegistered: true})
	if s.metrics != nil {
		s.metrics.IncrementRegistered()
	}
	s.logger.InfoContext(ctx, "user registered", "account_id", user.Account.String())
	return user, nil
}

func (s *Service) checkDocumentsUnique(ctx context.Context, u *models.User) error {
	taken, err := s.store.NationalIDTaken(ctx, u.NationalID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check national id")
	}
	if taken {
		return dErrors.New(dErrors.CodeInvalidState, "national id already registered")
	}
	taken, err = s.store.TaxIDTaken(ctx, u.TaxID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check tax id")
	}
	if taken {
		return dErrors.New(dErrors.CodeInvalidState, "tax id already registered")
	}
	return nil
}

// VerifyUser marks account verified and grants VERIFIED_USER. INSPECTOR only.
func (s *Service) VerifyUser(ctx context.Context, account id.AccountID) error {
	defer s.observe("verify_user", time.Now())
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		inspector, err := s.guard.Mutation(ctx, access.Role(id.RoleInspector))
		if err != nil {
			return err
		}
		user, err := s.loadUser(ctx, account)
		if err != nil {
			return err
		}
		if err := user.CanVerify(); err != nil {
			return err
		}
		return s.applyVerification(ctx, inspector, user)
	})
	if err != nil {
		return err
	}
	s.publishStatus(ctx, account, models.VerificationStatus{IsRegistered: true, IsVerified: true})
	if s.metrics != nil {
		s.metrics.IncrementVerified(1)
	}
	s.logger.InfoContext(ctx, "user verified", "account_id", account.String())
	return nil
}

// BatchVerifyUsers verifies every account or none. Accounts that are already
// verified are skipped. It returns the number of accounts newly verified.
func (s *Service) BatchVerifyUsers(ctx context.Context, accounts []id.AccountID) (int, error) {
	defer s.observe("batch_verify_users", time.Now())
	if len(accounts) == 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "accounts are required")
	}

	verified := 0
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		inspector, err := s.guard.Mutation(ctx, access.Role(id.RoleInspector))
		if err != nil {
			return err
		}
		for _, account := range accounts {
			user, err := s.loadUser(ctx, account)
			if err != nil {
				return err
			}
			if user.Verified {
				continue
			}
			if err := s.applyVerification(ctx, inspector, user); err != nil {
				return err
			}
			verified++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, account := range accounts {
		s.publishStatus(ctx, account, models.VerificationStatus{IsRegistered: true, IsVerified: true})
	}
	if s.metrics != nil {
		s.metrics.IncrementVerified(verified)
	}
	s.logger.InfoContext(ctx, "users verified in batch", "requested", len(accounts), "verified", verified)
	return verified, nil
}

func (s *Service) applyVerification(ctx context.Context, inspector id.AccountID, user *models.User) error {
	user.ApplyVerification(inspector, now(ctx))
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}
	if _, err := s.store.GrantRole(ctx, user.Account, id.RoleVerifiedUser); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant verified role")
	}
	return s.emit(ctx, audit.Event{
		Action:        string(audit.EventUserVerified),
		Subject:       user.Account.String(),
		SubjectIDHash: s.hash(user.NationalID),
	})
}

// AssignRole grants role to account. ADMIN only; granting a held role succeeds.
func (s *Service) AssignRole(ctx context.Context, account id.AccountID, role id.Role) error {
	return s.changeRole(ctx, account, role, true)
}

// RevokeRole removes role from account. ADMIN only; revoking an unheld role succeeds.
func (s *Service) RevokeRole(ctx context.Context, account id.AccountID, role id.Role) error {
	return s.changeRole(ctx, account, role, false)
}

func (s *Service) changeRole(ctx context.Context, account id.AccountID, role id.Role, grant bool) error {
	if account.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "account is required")
	}
	role, err := id.ParseRole(string(role))
	if err != nil {
		return err
	}
	op, event := "revoke", audit.EventRoleRevoked
	if grant {
		op, event = "assign", audit.EventRoleAssigned
	}

	changed := false
	err = s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Role(id.RoleAdmin)); err != nil {
			return err
		}
		if !grant && role == id.RoleInspector {
			if _, err := s.store.FindInspectorByAccount(ctx, account); err == nil {
				return dErrors.New(dErrors.CodeInvalidState, "account is a registered inspector; use remove inspector")
			} else if !errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load inspector")
			}
		}
		var err error
		if grant {
			changed, err = s.store.GrantRole(ctx, account, role)
		} else {
			changed, err = s.store.RevokeRole(ctx, account, role)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update roles")
		}
		if !changed {
			return nil
		}
		return s.emit(ctx, audit.Event{
			Action:  string(event),
			Subject: account.String(),
			Reason:  string(role),
		})
	})
	if err != nil {
		return err
	}
	if changed {
		if s.metrics != nil {
			s.metrics.RecordRoleChange(string(role), op)
		}
		s.logger.InfoContext(ctx, "role changed", "account_id", account.String(), "role", string(role), "op", op)
	}
	return nil
}

// AddInspector records an inspector and grants INSPECTOR in one step. Owner only.
func (s *Service) AddInspector(ctx context.Context, req models.AddInspectorRequest) (*models.Inspector, error) {
	req.Normalize()
	var inspector *models.Inspector
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Owner()); err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}
		if _, err := s.store.FindInspectorByAccount(ctx, req.Account); err == nil {
			return dErrors.New(dErrors.CodeInvalidState, "inspector already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load inspector")
		}

		next, err := s.seq.Next(ctx, inspectorSequence)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate inspector id")
		}
		inspector = &models.Inspector{
			ID:          id.InspectorID(next),
			Account:     req.Account,
			Name:        req.Name,
			Age:         req.Age,
			Designation: req.Designation,
			AddedAt:     now(ctx),
		}
		if err := s.store.CreateInspector(ctx, inspector); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save inspector")
		}
		if _, err := s.store.GrantRole(ctx, req.Account, id.RoleInspector); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant inspector role")
		}
		return s.emit(ctx, audit.Event{
			Action:  string(audit.EventInspectorAdded),
			Subject: req.Account.String(),
			Reason:  inspector.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "inspector added", "account_id", inspector.Account.String(), "inspector_id", inspector.ID.String())
	return inspector, nil
}

// RemoveInspector deletes the directory entry and revokes INSPECTOR. Owner only.
func (s *Service) RemoveInspector(ctx context.Context, account id.AccountID) error {
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Owner()); err != nil {
			return err
		}
		removed, err := s.store.DeleteInspector(ctx, account)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "inspector not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove inspector")
		}
		if _, err := s.store.RevokeRole(ctx, account, id.RoleInspector); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke inspector role")
		}
		return s.emit(ctx, audit.Event{
			Action:  string(audit.EventInspectorRemoved),
			Subject: account.String(),
			Reason:  removed.ID.String(),
		})
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "inspector removed", "account_id", account.String())
	return nil
}

// Pause closes the mutation gate for all registries. Owner or ADMIN.
func (s *Service) Pause(ctx context.Context) error {
	return s.setPaused(ctx, true)
}

// Unpause reopens the mutation gate. Owner or ADMIN.
func (s *Service) Unpause(ctx context.Context) error {
	return s.setPaused(ctx, false)
}

func (s *Service) setPaused(ctx context.Context, paused bool) error {
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Unpausable(ctx, access.AnyOf(access.Owner(), access.Role(id.RoleAdmin))); err != nil {
			return err
		}
		current, err := s.store.Paused(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read pause state")
		}
		if current == paused {
			if paused {
				return dErrors.New(dErrors.CodeInvalidState, "registry is paused")
			}
			return dErrors.New(dErrors.CodeInvalidState, "registry is not paused")
		}
		if err := s.store.SetPaused(ctx, paused); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update pause state")
		}
		event := audit.EventRegistryUnpaused
		if paused {
			event = audit.EventRegistryPaused
		}
		return s.emit(ctx, audit.Event{Action: string(event), Subject: "registry"})
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "pause state changed", "paused", paused)
	return nil
}

// TransferOwnership hands the owner identity to newOwner. Roles are not
// carried over; the new owner needs ADMIN granted separately.
func (s *Service) TransferOwnership(ctx context.Context, newOwner id.AccountID) error {
	if newOwner.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "new owner is required")
	}
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		previous, err := s.guard.Mutation(ctx, access.Owner())
		if err != nil {
			return err
		}
		if err := s.store.SetOwner(ctx, newOwner); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set owner")
		}
		return s.emit(ctx, audit.Event{
			Action:  string(audit.EventOwnershipTransferred),
			Subject: newOwner.String(),
			Reason:  "previous owner " + previous.String(),
		})
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "registry ownership transferred", "account_id", newOwner.String())
	return nil
}

func (s *Service) loadUser(ctx context.Context, account id.AccountID) (*models.User, error) {
	user, err := s.store.FindUser(ctx, account)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) error {
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, event)
}

func (s *Service) hash(value string) string {
	if s.auditPublisher == nil {
		return ""
	}
	return s.auditPublisher.HashSubjectID(value)
}

// publishStatus writes the committed status over whatever a concurrent
// read-through fill left behind. If the write fails the entry is dropped; a
// failure of both leaves a stale entry until its TTL expires.
func (s *Service) publishStatus(ctx context.Context, account id.AccountID, status models.VerificationStatus) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, account, status)
	if err == nil {
		return
	}
	s.logger.WarnContext(ctx, "failed to publish status", "account_id", account.String(), "error", err)
	if err := s.cache.Invalidate(ctx, account); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate status cache", "account_id", account.String(), "error", err)
	}
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(operation, start)
	}
}
