package service

import (
	"context"

	"landregistry/internal/transfer/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/pagination"
)

func (s *Service) GetPurchaseRequest(ctx context.Context, requestID id.RequestID) (*models.PurchaseRequest, error) {
	var req *models.PurchaseRequest
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.loadRequest(ctx, requestID)
		return err
	})
	return req, err
}

// GetUserPurchaseRequests pages through the requests buyer created, oldest first.
func (s *Service) GetUserPurchaseRequests(ctx context.Context, buyer id.AccountID, offset, limit int) ([]*models.PurchaseRequest, error) {
	var page []*models.PurchaseRequest
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		all, err := s.store.ListRequestsByBuyer(ctx, buyer)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list purchase requests")
		}
		page, err = pagination.Page(all, offset, limit)
		return err
	})
	return page, err
}

// GetLandPurchaseRequests lists every request made for landID, oldest first.
func (s *Service) GetLandPurchaseRequests(ctx context.Context, landID id.LandID) ([]*models.PurchaseRequest, error) {
	var reqs []*models.PurchaseRequest
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		if _, err := s.assets.GetLand(ctx, landID); err != nil {
			return err
		}
		var err error
		reqs, err = s.store.ListRequestsByLand(ctx, landID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list purchase requests")
		}
		return nil
	})
	return reqs, err
}

// GetUserTransactionHistory pages through completed purchases account took
// part in, as buyer or seller.
func (s *Service) GetUserTransactionHistory(ctx context.Context, account id.AccountID, offset, limit int) ([]models.Transaction, error) {
	var page []models.Transaction
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		all, err := s.store.ListTransactions(ctx, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
		}
		page, err = pagination.Page(all, offset, limit)
		return err
	})
	return page, err
}
