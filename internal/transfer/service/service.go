// Package service implements the purchase workflow between a buyer and the
// current owner of a listed land. Payment, ownership transfer and completion
// happen in one ledger transaction.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"landregistry/internal/access"
	assetmodels "landregistry/internal/asset/models"
	"landregistry/internal/ledger"
	"landregistry/internal/transfer/metrics"
	"landregistry/internal/transfer/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
	"landregistry/pkg/validation"
)

type Store interface {
	CreateRequest(ctx context.Context, req *models.PurchaseRequest) error
	UpdateRequest(ctx context.Context, req *models.PurchaseRequest) error
	FindRequest(ctx context.Context, requestID id.RequestID) (*models.PurchaseRequest, error)
	ListRequestsByBuyer(ctx context.Context, buyer id.AccountID) ([]*models.PurchaseRequest, error)
	ListRequestsByLand(ctx context.Context, landID id.LandID) ([]*models.PurchaseRequest, error)
	AppendTransaction(ctx context.Context, account id.AccountID, tx models.Transaction) error
	ListTransactions(ctx context.Context, account id.AccountID) ([]models.Transaction, error)
}

// AssetRegistry is the part of the asset registry the engine drives.
type AssetRegistry interface {
	GetLand(ctx context.Context, landID id.LandID) (*assetmodels.Land, error)
	TransferOwnership(ctx context.Context, landID id.LandID, newOwner id.AccountID, newDocHash string) error
}

// Funds moves value inside the caller's transaction.
type Funds interface {
	Transfer(ctx context.Context, from, to id.AccountID, amount int64) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const requestSequence = "purchase_request"

type Service struct {
	store          Store
	ledger         ledger.Ledger
	seq            ledger.Sequencer
	guard          *access.Guard
	assets         AssetRegistry
	funds          Funds
	engine         id.AccountID
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

// New builds the engine. engine is the principal it presents to the asset
// registry when moving ownership; it must be on the asset allow-list.
func New(store Store, l ledger.Ledger, seq ledger.Sequencer, guard *access.Guard, assets AssetRegistry, funds Funds, engine id.AccountID, opts ...Option) *Service {
	s := &Service{
		store:  store,
		ledger: l,
		seq:    seq,
		guard:  guard,
		assets: assets,
		funds:  funds,
		engine: engine,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// CreatePurchaseRequest opens a PENDING request for a listed land.
// VERIFIED_USER only; the seller is the land owner at this moment.
func (s *Service) CreatePurchaseRequest(ctx context.Context, landID id.LandID) (*models.PurchaseRequest, error) {
	defer s.observe("create_request", time.Now())

	var req *models.PurchaseRequest
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		buyer, err := s.guard.Mutation(ctx, access.Role(id.RoleVerifiedUser))
		if err != nil {
			return err
		}
		land, err := s.assets.GetLand(ctx, landID)
		if err != nil {
			return err
		}
		if !land.ForSale {
			return dErrors.New(dErrors.CodeInvalidState, "land not for sale")
		}
		if land.Owner == buyer {
			return dErrors.New(dErrors.CodeValidation, "buyer already owns this land")
		}
		next, err := s.seq.Next(ctx, requestSequence)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate request id")
		}
		req = models.NewPurchaseRequest(id.RequestID(next), landID, buyer, land.Owner, requestcontext.Now(ctx))
		if err := s.store.CreateRequest(ctx, req); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save purchase request")
		}
		return s.emit(ctx, audit.EventPurchaseRequested, req, "")
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.logger.InfoContext(ctx, "purchase requested",
		"request_id", req.ID.String(),
		"land_id", landID.String(),
		"account_id", req.Buyer.String(),
	)
	return req, nil
}

// ProcessPurchaseRequest accepts or rejects a PENDING request. Only the
// land's current owner may decide.
func (s *Service) ProcessPurchaseRequest(ctx context.Context, requestID id.RequestID, approve bool) error {
	defer s.observe("process_request", time.Now())
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		caller, err := s.guard.Mutation(ctx)
		if err != nil {
			return err
		}
		return s.process(ctx, caller, requestID, approve)
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordDecision(approve)
	}
	s.logger.InfoContext(ctx, "purchase request processed", "request_id", requestID.String(), "approved", approve)
	return nil
}

// BatchProcessRequests applies ProcessPurchaseRequest to each pair as one
// unit: any failure leaves every request untouched.
func (s *Service) BatchProcessRequests(ctx context.Context, requestIDs []id.RequestID, decisions []bool) error {
	defer s.observe("batch_process_requests", time.Now())
	if len(requestIDs) != len(decisions) {
		return dErrors.New(dErrors.CodeValidation, "array length mismatch")
	}
	if len(requestIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "requests are required")
	}
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		caller, err := s.guard.Mutation(ctx)
		if err != nil {
			return err
		}
		for i, requestID := range requestIDs {
			if err := s.process(ctx, caller, requestID, decisions[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		for _, approve := range decisions {
			s.metrics.RecordDecision(approve)
		}
	}
	s.logger.InfoContext(ctx, "purchase requests processed", "count", len(requestIDs))
	return nil
}

func (s *Service) process(ctx context.Context, caller id.AccountID, requestID id.RequestID, approve bool) error {
	req, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}
	land, err := s.assets.GetLand(ctx, req.LandID)
	if err != nil {
		return err
	}
	if err := s.guard.Require(ctx, caller, access.Is(land.Owner, "caller is not the seller")); err != nil {
		return err
	}
	if err := req.CanProcess(); err != nil {
		return err
	}
	req.ApplyDecision(approve, requestcontext.Now(ctx))
	if err := s.store.UpdateRequest(ctx, req); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save purchase request")
	}
	return s.emit(ctx, audit.EventPurchaseProcessed, req, req.Status.String())
}

// MakePayment pays amount for an ACCEPTED request and completes the
// purchase: value moves to the seller, the land moves to the buyer and the
// request ends COMPLETED, all or nothing. Buyer only.
func (s *Service) MakePayment(ctx context.Context, requestID id.RequestID, amount int64) (*models.PurchaseRequest, error) {
	defer s.observe("make_payment", time.Now())

	var req *models.PurchaseRequest
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		caller, err := s.guard.Mutation(ctx)
		if err != nil {
			return err
		}
		req, err = s.loadRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if err := s.guard.Require(ctx, caller, access.Is(req.Buyer, "caller is not the buyer")); err != nil {
			return err
		}
		land, err := s.assets.GetLand(ctx, req.LandID)
		if err != nil {
			return err
		}
		if err := req.CanPay(amount, land.Price, land.ForSale); err != nil {
			return err
		}
		if land.Owner != req.Seller {
			return dErrors.New(dErrors.CodeInvalidState, "seller no longer owns this land")
		}
		if err := s.funds.Transfer(ctx, req.Buyer, req.Seller, amount); err != nil {
			return err
		}

		now := requestcontext.Now(ctx)
		req.ApplyPayment(amount, now)
		if err := s.store.UpdateRequest(ctx, req); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save purchase request")
		}
		if err := s.emit(ctx, audit.EventPaymentMade, req, ""); err != nil {
			return err
		}
		return s.complete(ctx, req, "")
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordPurchase(amount)
	}
	s.logger.InfoContext(ctx, "purchase completed",
		"request_id", req.ID.String(),
		"land_id", req.LandID.String(),
		"from_account_id", req.Seller.String(),
		"to_account_id", req.Buyer.String(),
		"amount", amount,
	)
	return req, nil
}

// TransferLandOwnership finalizes a request left at PAYMENT_DONE, replacing
// the land's document hash. INSPECTOR only; a COMPLETED request is a no-op.
func (s *Service) TransferLandOwnership(ctx context.Context, requestID id.RequestID, newDocHash string) error {
	defer s.observe("transfer_land_ownership", time.Now())
	if err := validation.OptionalText(newDocHash); err != nil {
		return err
	}

	var completed bool
	err := s.ledger.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.guard.Mutation(ctx, access.Role(id.RoleInspector)); err != nil {
			return err
		}
		req, err := s.loadRequest(ctx, requestID)
		if err != nil {
			return err
		}
		switch req.Status {
		case models.StatusCompleted:
			return nil
		case models.StatusPaymentDone:
		default:
			return dErrors.New(dErrors.CodeInvalidState, "payment not done")
		}
		completed = true
		return s.complete(ctx, req, newDocHash)
	})
	if err != nil {
		return err
	}
	if completed {
		s.logger.InfoContext(ctx, "purchase finalized by inspector", "request_id", requestID.String())
	}
	return nil
}

// complete moves the land as the engine principal, closes the request and
// records the transaction for both parties.
func (s *Service) complete(ctx context.Context, req *models.PurchaseRequest, newDocHash string) error {
	engineCtx := requestcontext.WithCaller(ctx, s.engine)
	if err := s.assets.TransferOwnership(engineCtx, req.LandID, req.Buyer, newDocHash); err != nil {
		return err
	}
	req.Complete(requestcontext.Now(ctx))
	if err := s.store.UpdateRequest(ctx, req); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save purchase request")
	}
	tx := req.Transaction()
	for _, account := range []id.AccountID{req.Buyer, req.Seller} {
		if err := s.store.AppendTransaction(ctx, account, tx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
		}
	}
	return s.emit(ctx, audit.EventPurchaseCompleted, req, "")
}

func (s *Service) loadRequest(ctx context.Context, requestID id.RequestID) (*models.PurchaseRequest, error) {
	req, err := s.store.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load purchase request")
	}
	return req, nil
}

func (s *Service) emit(ctx context.Context, event audit.AuditEvent, req *models.PurchaseRequest, decision string) error {
	if s.auditPublisher == nil {
		return nil
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		Action:   string(event),
		Subject:  "request:" + req.ID.String(),
		Decision: decision,
		Reason:   "land:" + req.LandID.String(),
	})
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(operation, start)
	}
}
