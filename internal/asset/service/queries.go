package service

import (
	"context"

	"landregistry/internal/asset/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/pagination"
)

// GetLand returns the current record of landID.
func (s *Service) GetLand(ctx context.Context, landID id.LandID) (*models.Land, error) {
	var land *models.Land
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		land, err = s.loadLand(ctx, landID)
		return err
	})
	return land, err
}

// GetLandsByOwner lists the ids currently owned by owner, in registration order.
func (s *Service) GetLandsByOwner(ctx context.Context, owner id.AccountID) ([]id.LandID, error) {
	var ids []id.LandID
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		lands, err := s.store.ListLandsByOwner(ctx, owner)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list lands")
		}
		ids = landIDs(lands)
		return nil
	})
	return ids, err
}

// ListLandsForSale returns every listed land.
func (s *Service) ListLandsForSale(ctx context.Context) ([]*models.Land, error) {
	var lands []*models.Land
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		lands, err = s.store.ListLandsForSale(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list lands for sale")
		}
		return nil
	})
	return lands, err
}

// GetTotalLands returns how many lands have ever been registered.
func (s *Service) GetTotalLands(ctx context.Context) (int, error) {
	var total int
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		total, err = s.store.CountLands(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count lands")
		}
		return nil
	})
	return total, err
}

func (s *Service) GetLandDocuments(ctx context.Context, landID id.LandID) ([]models.Document, error) {
	var docs []models.Document
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		if _, err := s.loadLand(ctx, landID); err != nil {
			return err
		}
		var err error
		docs, err = s.store.ListDocuments(ctx, landID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
		}
		return nil
	})
	return docs, err
}

// GetLandHistory returns history[offset : offset+limit] in append order.
func (s *Service) GetLandHistory(ctx context.Context, landID id.LandID, offset, limit int) ([]models.HistoryEntry, error) {
	var page []models.HistoryEntry
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		if _, err := s.loadLand(ctx, landID); err != nil {
			return err
		}
		history, err := s.store.ListHistory(ctx, landID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list history")
		}
		page, err = pagination.Page(history, offset, limit)
		return err
	})
	return page, err
}

func (s *Service) IsAuthorizedContract(ctx context.Context, account id.AccountID) (bool, error) {
	var ok bool
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		ok, err = s.store.IsContract(ctx, account)
		return err
	})
	return ok, err
}

func (s *Service) ListAuthorizedContracts(ctx context.Context) ([]id.AccountID, error) {
	var accounts []id.AccountID
	err := s.ledger.View(ctx, func(ctx context.Context) error {
		var err error
		accounts, err = s.store.ListContracts(ctx)
		return err
	})
	return accounts, err
}

func landIDs(lands []*models.Land) []id.LandID {
	ids := make([]id.LandID, 0, len(lands))
	for _, l := range lands {
		ids = append(ids, l.ID)
	}
	return ids
}
