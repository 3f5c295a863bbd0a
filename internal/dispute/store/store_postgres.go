package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"landregistry/internal/dispute/models"
	"landregistry/internal/platform/postgres"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
	txcontext "landregistry/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const disputeColumns = `land_id, id, raiser, category, reason, resolved, resolution, raised_at, resolved_at, resolved_by`

func (s *PostgresStore) CreateDispute(ctx context.Context, d *models.Dispute) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO disputes (`+disputeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, int64(d.LandID), int64(d.ID), uuid.UUID(d.Raiser), string(d.Category), d.Reason, d.Resolved,
		d.Resolution, d.RaisedAt, d.ResolvedAt, nullAccount(d.ResolvedBy))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert dispute: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateDispute(ctx context.Context, d *models.Dispute) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE disputes
		SET    resolved = $3, resolution = $4, resolved_at = $5, resolved_by = $6
		WHERE  land_id = $1 AND id = $2
	`, int64(d.LandID), int64(d.ID), d.Resolved, d.Resolution, d.ResolvedAt, nullAccount(d.ResolvedBy))
	if err != nil {
		return fmt.Errorf("update dispute: %w", err)
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

func (s *PostgresStore) FindDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID) (*models.Dispute, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+disputeColumns+` FROM disputes WHERE land_id = $1 AND id = $2`, int64(landID), int64(disputeID))
	d, err := scanDispute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dispute: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListDisputes(ctx context.Context, landID id.LandID) ([]*models.Dispute, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+disputeColumns+` FROM disputes WHERE land_id = $1 ORDER BY id`, int64(landID))
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	defer rows.Close()

	var out []*models.Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispute: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountOpenDisputes(ctx context.Context, landID id.LandID) (int, error) {
	var n int
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM disputes WHERE land_id = $1 AND NOT resolved`, int64(landID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count disputes: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDispute(row scanner) (*models.Dispute, error) {
	var (
		d             models.Dispute
		landID, rawID int64
		raiser        uuid.UUID
		category      string
		resolvedAt    sql.NullTime
		resolvedBy    uuid.NullUUID
	)
	err := row.Scan(&landID, &rawID, &raiser, &category, &d.Reason, &d.Resolved, &d.Resolution,
		&d.RaisedAt, &resolvedAt, &resolvedBy)
	if err != nil {
		return nil, err
	}
	d.LandID = id.LandID(landID)
	d.ID = id.DisputeID(rawID)
	d.Raiser = id.AccountID(raiser)
	d.Category = models.Category(category)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		d.ResolvedAt = &t
	}
	if resolvedBy.Valid {
		d.ResolvedBy = id.AccountID(resolvedBy.UUID)
	}
	return &d, nil
}

func nullAccount(a id.AccountID) uuid.NullUUID {
	if a.IsNil() {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(a), Valid: true}
}
