// Package service implements the dispute registry: claims raised against a
// land and their resolution by an inspector.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"landregistry/internal/access"
	assetmodels "landregistry/internal/asset/models"
	"landregistry/internal/dispute/metrics"
	"landregistry/internal/dispute/models"
	"landregistry/internal/ledger"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/pagination"
	"landregistry/pkg/platform/audit"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
	"landregistry/pkg/validation"
)

type Store interface {
	CreateDispute(ctx context.Context, d *models.Dispute) error
	UpdateDispute(ctx context.Context, d *models.Dispute) error
	FindDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID) (*models.Dispute, error)
	ListDisputes(ctx context.Context, landID id.LandID) ([]*models.Dispute, error)
	CountOpenDisputes(ctx context.Context, landID id.LandID) (int, error)
}

type AssetRegistry interface {
	GetLand(ctx context.Context, landID id.LandID) (*assetmodels.Land, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	ledger         ledger.Ledger
	seq            ledger.Sequencer
	guard          *access.Guard
	assets         AssetRegistry
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

func New(store Store, l ledger.Ledger, seq ledger.Sequencer, guard *access.Guard, assets AssetRegistry, opts ...Option) *Service {
	s := &Service{store: store, ledger: l, seq: seq, guard: guard, assets: assets}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// sequenceName scopes dispute ids to one land.
func sequenceName(landID id.LandID) string {
	return "dispute:" + landID.String()
}

// RaiseDispute opens an unresolved dispute against an existing land.
// VERIFIED_USER only.
func (s *Service) RaiseDispute(ctx context.Context, landID id.LandID, reason string, category models.Category) (*models.Dispute, error) {
	claim := models.Claim{Category: category, Reason: reason}
	claim.Normalize()

	var d *models.Dispute
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		raiser, err := s.guard.Mutation(ctx, access.Role(id.RoleVerifiedUser))
		if err != nil {
			return err
		}
		if _, err := s.assets.GetLand(ctx, landID); err != nil {
			return err
		}
		if err := claim.Validate(); err != nil {
			return err
		}
		next, err := s.seq.Next(ctx, sequenceName(landID))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate dispute id")
		}
		d, err = models.NewDispute(id.DisputeID(next), landID, raiser, claim, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		if err := s.store.CreateDispute(ctx, d); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dispute")
		}
		return s.emit(ctx, audit.EventDisputeRaised, d, string(d.Category))
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordRaised(string(d.Category))
	}
	s.logger.InfoContext(ctx, "dispute raised",
		"land_id", landID.String(),
		"dispute_id", d.ID.String(),
		"category", string(d.Category),
	)
	return d, nil
}

// ResolveDispute closes an open dispute. INSPECTOR only.
func (s *Service) ResolveDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID, resolution string) error {
	resolution = strings.TrimSpace(resolution)
	if err := validation.Text("resolution", resolution); err != nil {
		return err
	}
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		inspector, err := s.guard.Mutation(ctx, access.Role(id.RoleInspector))
		if err != nil {
			return err
		}
		d, err := s.loadDispute(ctx, landID, disputeID)
		if err != nil {
			return err
		}
		if err := d.CanResolve(); err != nil {
			return err
		}
		d.Resolve(inspector, resolution, requestcontext.Now(ctx))
		if err := s.store.UpdateDispute(ctx, d); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dispute")
		}
		return s.emit(ctx, audit.EventDisputeResolved, d, "")
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementResolved()
	}
	s.logger.InfoContext(ctx, "dispute resolved", "land_id", landID.String(), "dispute_id", disputeID.String())
	return nil
}

func (s *Service) GetDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID) (*models.Dispute, error) {
	var d *models.Dispute
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		d, err = s.loadDispute(ctx, landID, disputeID)
		return err
	})
	return d, err
}

// GetLandDisputes returns disputes[offset : offset+limit] for landID in the
// order they were raised.
func (s *Service) GetLandDisputes(ctx context.Context, landID id.LandID, offset, limit int) ([]*models.Dispute, error) {
	var page []*models.Dispute
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		if _, err := s.assets.GetLand(ctx, landID); err != nil {
			return err
		}
		all, err := s.store.ListDisputes(ctx, landID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list disputes")
		}
		page, err = pagination.Page(all, offset, limit)
		return err
	})
	return page, err
}

func (s *Service) CountOpenDisputes(ctx context.Context, landID id.LandID) (int, error) {
	var n int
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		if _, err := s.assets.GetLand(ctx, landID); err != nil {
			return err
		}
		var err error
		n, err = s.store.CountOpenDisputes(ctx, landID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count disputes")
		}
		return nil
	})
	return n, err
}

func (s *Service) loadDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID) (*models.Dispute, error) {
	d, err := s.store.FindDispute(ctx, landID, disputeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "dispute not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dispute")
	}
	return d, nil
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, d *models.Dispute, reason string) error {
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		Action:  string(event),
		Subject: "land:" + d.LandID.String() + "/dispute:" + d.ID.String(),
		Reason:  reason,
	})
}
