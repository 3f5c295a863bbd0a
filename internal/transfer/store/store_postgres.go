package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"landregistry/internal/platform/postgres"
	"landregistry/internal/transfer/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
	txcontext "landregistry/pkg/platform/tx"
)

// PostgresStore persists purchase requests. Writes run inside the ledger
// transaction carried in ctx.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `id, land_id, buyer, seller, status, payment_done, amount, created_at, updated_at`

func (s *PostgresStore) CreateRequest(ctx context.Context, req *models.PurchaseRequest) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO purchase_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, int64(req.ID), int64(req.LandID), uuid.UUID(req.Buyer), uuid.UUID(req.Seller), int16(req.Status),
		req.PaymentDone, req.Amount, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateRequest(ctx context.Context, req *models.PurchaseRequest) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE purchase_requests
		SET status = $2, payment_done = $3, amount = $4, updated_at = $5
		WHERE id = $1
	`, int64(req.ID), int16(req.Status), req.PaymentDone, req.Amount, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindRequest(ctx context.Context, requestID id.RequestID) (*models.PurchaseRequest, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM purchase_requests WHERE id = $1`, int64(requestID))
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find purchase request: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) ListRequestsByBuyer(ctx context.Context, buyer id.AccountID) ([]*models.PurchaseRequest, error) {
	return s.queryRequests(ctx,
		`SELECT `+requestColumns+` FROM purchase_requests WHERE buyer = $1 ORDER BY id`, uuid.UUID(buyer))
}

func (s *PostgresStore) ListRequestsByLand(ctx context.Context, landID id.LandID) ([]*models.PurchaseRequest, error) {
	return s.queryRequests(ctx,
		`SELECT `+requestColumns+` FROM purchase_requests WHERE land_id = $1 ORDER BY id`, int64(landID))
}

func (s *PostgresStore) queryRequests(ctx context.Context, query string, args ...any) ([]*models.PurchaseRequest, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query purchase requests: %w", err)
	}
	defer rows.Close()

	var out []*models.PurchaseRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AppendTransaction(ctx context.Context, account id.AccountID, tx models.Transaction) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO transactions (account, position, request_id, land_id, buyer, seller, amount, completed_at)
		SELECT $1, COALESCE(MAX(position), -1) + 1, $2, $3, $4, $5, $6, $7
		FROM transactions WHERE account = $1
	`, uuid.UUID(account), int64(tx.RequestID), int64(tx.LandID), uuid.UUID(tx.Buyer), uuid.UUID(tx.Seller),
		tx.Amount, tx.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context, account id.AccountID) ([]models.Transaction, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT request_id, land_id, buyer, seller, amount, completed_at
		FROM transactions WHERE account = $1 ORDER BY position
	`, uuid.UUID(account))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var (
			tx              models.Transaction
			requestID, land int64
			buyer, seller   uuid.UUID
		)
		if err := rows.Scan(&requestID, &land, &buyer, &seller, &tx.Amount, &tx.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.RequestID = id.RequestID(requestID)
		tx.LandID = id.LandID(land)
		tx.Buyer = id.AccountID(buyer)
		tx.Seller = id.AccountID(seller)
		out = append(out, tx)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*models.PurchaseRequest, error) {
	var (
		req           models.PurchaseRequest
		rawID, land   int64
		buyer, seller uuid.UUID
		status        int16
	)
	err := row.Scan(&rawID, &land, &buyer, &seller, &status, &req.PaymentDone, &req.Amount,
		&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	req.ID = id.RequestID(rawID)
	req.LandID = id.LandID(land)
	req.Buyer = id.AccountID(buyer)
	req.Seller = id.AccountID(seller)
	req.Status = models.Status(status)
	return &req, nil
}
