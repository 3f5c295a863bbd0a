// Package service implements the asset registry: land records, their
// documents and history, sale status, and the allow-list of principals
// trusted to move ownership.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"landregistry/internal/access"
	"landregistry/internal/asset/metrics"
	"landregistry/internal/asset/models"
	"landregistry/internal/ledger"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
	"landregistry/pkg/validation"
)

type LandStore interface {
	CreateLand(ctx context.Context, land *models.Land) error
	// UpdateLand also moves the record between owner indexes when Owner changed.
	UpdateLand(ctx context.Context, land *models.Land) error
	FindLand(ctx context.Context, landID id.LandID) (*models.Land, error)
	ListLandsByOwner(ctx context.Context, owner id.AccountID) ([]*models.Land, error)
	ListLandsForSale(ctx context.Context) ([]*models.Land, error)
	CountLands(ctx context.Context) (int, error)
}

type DocumentStore interface {
	AppendDocument(ctx context.Context, landID id.LandID, doc models.Document) error
	ListDocuments(ctx context.Context, landID id.LandID) ([]models.Document, error)
	CountDocuments(ctx context.Context, landID id.LandID) (int, error)
}

type HistoryStore interface {
	AppendHistory(ctx context.Context, landID id.LandID, entry models.HistoryEntry) error
	ListHistory(ctx context.Context, landID id.LandID) ([]models.HistoryEntry, error)
}

type ContractStore interface {
	AddContract(ctx context.Context, account id.AccountID, at time.Time) (bool, error)
	RemoveContract(ctx context.Context, account id.AccountID) (bool, error)
	IsContract(ctx context.Context, account id.AccountID) (bool, error)
	ListContracts(ctx context.Context) ([]id.AccountID, error)
}

type Store interface {
	LandStore
	DocumentStore
	HistoryStore
	ContractStore
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const landSequence = "land"

type Service struct {
	store          Store
	ledger         ledger.Ledger
	seq            ledger.Sequencer
	guard          *access.Guard
	maxDocuments   int
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

// WithMaxDocuments overrides the per-land document cap.
func WithMaxDocuments(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDocuments = n
		}
	}
}

func New(store Store, l ledger.Ledger, seq ledger.Sequencer, guard *access.Guard, opts ...Option) *Service {
	s := &Service{
		store:        store,
		ledger:       l,
		seq:          seq,
		guard:        guard,
		maxDocuments: models.DefaultMaxDocuments,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// AddLand records a new land owned by the caller. VERIFIED_USER only.
func (s *Service) AddLand(ctx context.Context, req models.AddLandRequest) (*models.Land, error) {
	defer s.observe("add_land", time.Now())
	req.Normalize()

	var land *models.Land
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		caller, err := s.guard.Mutation(ctx, access.Role(id.RoleVerifiedUser))
		if err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return err
		}
		next, err := s.seq.Next(ctx, landSequence)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate land id")
		}
		land, err = models.NewLand(id.LandID(next), caller, req, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		if err := s.store.CreateLand(ctx, land); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save land")
		}
		if err := s.appendHistory(ctx, land.ID, "Land registered by "+caller.String()); err != nil {
			return err
		}
		return s.emit(ctx, audit.EventLandRegistered, land.ID, "")
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementRegistered()
	}
	s.logger.InfoContext(ctx, "land registered", "land_id", land.ID.String(), "account_id", land.Owner.String())
	return land, nil
}

// VerifyLand records the single inspection outcome for a land. INSPECTOR only.
func (s *Service) VerifyLand(ctx context.Context, landID id.LandID, approve bool, remark string) error {
	defer s.observe("verify_land", time.Now())
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Role(id.RoleInspector)); err != nil {
			return err
		}
		if err := validation.OptionalText(remark); err != nil {
			return err
		}
		land, err := s.loadLand(ctx, landID)
		if err != nil {
			return err
		}
		if err := land.CanVerify(); err != nil {
			return err
		}
		land.ApplyVerification(approve, remark, requestcontext.Now(ctx))
		desc := "Land verified"
		decision := "approved"
		if !approve {
			desc = "Land verification rejected"
			decision = "rejected"
		}
		if remark != "" {
			desc += ": " + remark
		}
		if err := s.save(ctx, land, desc); err != nil {
			return err
		}
		return s.emit(ctx, audit.EventLandVerified, landID, decision)
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordInspection(approve)
	}
	s.logger.InfoContext(ctx, "land inspected", "land_id", landID.String(), "approved", approve)
	return nil
}

// PutLandForSale lists a verified land. Land owner only.
func (s *Service) PutLandForSale(ctx context.Context, landID id.LandID) error {
	return s.ownerUpdate(ctx, landID, audit.EventLandListed, func(land *models.Land, now time.Time) (string, error) {
		if err := land.CanList(); err != nil {
			return "", err
		}
		land.ForSale = true
		land.UpdatedAt = now
		return "Listed for sale at " + fmt.Sprint(land.Price), nil
	})
}

// TakeLandOffSale delists a land. Land owner only.
func (s *Service) TakeLandOffSale(ctx context.Context, landID id.LandID) error {
	return s.ownerUpdate(ctx, landID, audit.EventLandDelisted, func(land *models.Land, now time.Time) (string, error) {
		if err := land.CanDelist(); err != nil {
			return "", err
		}
		land.ForSale = false
		land.UpdatedAt = now
		return "Removed from sale", nil
	})
}

// UpdateLandDetails replaces the descriptive fields. Land owner only.
func (s *Service) UpdateLandDetails(ctx context.Context, landID id.LandID, details models.LandDetails) error {
	details.Normalize()
	return s.ownerUpdate(ctx, landID, audit.EventLandUpdated, func(land *models.Land, now time.Time) (string, error) {
		if err := details.Validate(); err != nil {
			return "", err
		}
		land.ApplyDetails(details, now)
		return "Land details updated", nil
	})
}

// UpdateLandPrice sets a new positive price. Land owner only.
func (s *Service) UpdateLandPrice(ctx context.Context, landID id.LandID, price int64) error {
	return s.ownerUpdate(ctx, landID, audit.EventLandUpdated, func(land *models.Land, now time.Time) (string, error) {
		if price <= 0 {
			return "", dErrors.New(dErrors.CodeValidation, "price must be greater than zero")
		}
		previous := land.Price
		land.Price = price
		land.UpdatedAt = now
		return fmt.Sprintf("Price updated from %d to %d", previous, price), nil
	})
}

// ownerUpdate runs a land-owner mutation: load, authorize, apply, record.
func (s *Service) ownerUpdate(ctx context.Context, landID id.LandID, event audit.AuditEvent, apply func(*models.Land, time.Time) (string, error)) error {
	defer s.observe(string(event), time.Now())
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		land, err := s.loadOwned(ctx, landID)
		if err != nil {
			return err
		}
		desc, err := apply(land, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		if err := s.save(ctx, land, desc); err != nil {
			return err
		}
		return s.emit(ctx, event, landID, desc)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "land updated", "land_id", landID.String(), "event", string(event))
	return nil
}

// AddLandDocument attaches a document until the cap is reached. Land owner only.
func (s *Service) AddLandDocument(ctx context.Context, landID id.LandID, hash, description string) error {
	defer s.observe("add_land_document", time.Now())
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		land, err := s.loadOwned(ctx, landID)
		if err != nil {
			return err
		}
		now := requestcontext.Now(ctx)
		doc, err := models.NewDocument(hash, description, now)
		if err != nil {
			return err
		}
		count, err := s.store.CountDocuments(ctx, landID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count documents")
		}
		if count >= s.maxDocuments {
			return dErrors.New(dErrors.CodeResourceLimit, "maximum documents reached")
		}
		if err := s.store.AppendDocument(ctx, landID, doc); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save document")
		}
		land.UpdatedAt = now
		if err := s.save(ctx, land, "Document added: "+doc.Description); err != nil {
			return err
		}
		return s.emit(ctx, audit.EventLandDocumentAdded, landID, doc.Description)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "land document added", "land_id", landID.String())
	return nil
}

// AuthorizeContract adds account to the transfer allow-list. Registry owner only.
func (s *Service) AuthorizeContract(ctx context.Context, account id.AccountID) error {
	return s.changeContract(ctx, account, true)
}

// DeauthorizeContract removes account from the transfer allow-list. Registry owner only.
func (s *Service) DeauthorizeContract(ctx context.Context, account id.AccountID) error {
	return s.changeContract(ctx, account, false)
}

func (s *Service) changeContract(ctx context.Context, account id.AccountID, authorize bool) error {
	if account.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "contract account is required")
	}
	changed := false
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Owner()); err != nil {
			return err
		}
		var (
			err   error
			event = audit.EventContractDeauthorized
		)
		if authorize {
			event = audit.EventContractAuthorized
			changed, err = s.store.AddContract(ctx, account, requestcontext.Now(ctx))
		} else {
			changed, err = s.store.RemoveContract(ctx, account)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update contract allow-list")
		}
		if !changed || s.auditPublisher == nil {
			return nil
		}
		return s.auditPublisher.Emit(ctx, audit.Event{Action: string(event), Subject: account.String()})
	})
	if err != nil {
		return err
	}
	if changed {
		s.logger.InfoContext(ctx, "contract allow-list changed", "account_id", account.String(), "authorized", authorize)
	}
	return nil
}

// TransferOwnership moves a land to newOwner, takes it off sale and records
// the new document hash. The caller must be on the allow-list or be the land
// owner.
func (s *Service) TransferOwnership(ctx context.Context, landID id.LandID, newOwner id.AccountID, newDocHash string) error {
	defer s.observe("transfer_ownership", time.Now())
	if newOwner.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "new owner is required")
	}
	if err := validation.OptionalText(newDocHash); err != nil {
		return err
	}

	var previous id.AccountID
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		caller, err := s.guard.Mutation(ctx)
		if err != nil {
			return err
		}
		land, err := s.loadLand(ctx, landID)
		if err != nil {
			return err
		}
		err = s.guard.Require(ctx, caller, access.AnyOf(
			access.Is(land.Owner, "caller is not the land owner or an authorized contract"),
			access.Check("", func(ctx context.Context, caller id.AccountID) (bool, error) {
				return s.store.IsContract(ctx, caller)
			}),
		))
		if err != nil {
			return err
		}
		if land.Owner == newOwner {
			return dErrors.New(dErrors.CodeValidation, "new owner must differ from current owner")
		}

		previous = land.Owner
		land.ApplyTransfer(newOwner, newDocHash, requestcontext.Now(ctx))
		desc := fmt.Sprintf("Ownership transferred from %s to %s", previous, newOwner)
		if err := s.save(ctx, land, desc); err != nil {
			return err
		}
		return s.emit(ctx, audit.EventLandTransferred, landID, newOwner.String())
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementTransferred()
	}
	s.logger.InfoContext(ctx, "land transferred",
		"land_id", landID.String(),
		"from_account_id", previous.String(),
		"to_account_id", newOwner.String(),
	)
	return nil
}

func (s *Service) loadLand(ctx context.Context, landID id.LandID) (*models.Land, error) {
	land, err := s.store.FindLand(ctx, landID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "land not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load land")
	}
	return land, nil
}

// loadOwned authorizes a mutation by the land's current owner.
func (s *Service) loadOwned(ctx context.Context, landID id.LandID) (*models.Land, error) {
	caller, err := s.guard.Mutation(ctx)
	if err != nil {
		return nil, err
	}
	land, err := s.loadLand(ctx, landID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Require(ctx, caller, access.Is(land.Owner, "caller is not the land owner")); err != nil {
		return nil, err
	}
	return land, nil
}

// save persists land and appends desc to its history.
func (s *Service) save(ctx context.Context, land *models.Land, desc string) error {
	if err := s.store.UpdateLand(ctx, land); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save land")
	}
	return s.appendHistory(ctx, land.ID, desc)
}

func (s *Service) appendHistory(ctx context.Context, landID id.LandID, desc string) error {
	entry := models.HistoryEntry{Description: desc, Timestamp: requestcontext.Now(ctx)}
	if err := s.store.AppendHistory(ctx, landID, entry); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append history")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, landID id.LandID, reason string) error {
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		Action:  string(event),
		Subject: "land:" + landID.String(),
		Reason:  reason,
	})
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(operation, start)
	}
}
