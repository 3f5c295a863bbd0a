package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"landregistry/internal/asset/models"
	"landregistry/internal/platform/postgres"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
	txcontext "landregistry/pkg/platform/tx"
)

// PostgresStore persists land records. Writes run inside the ledger
// transaction carried in ctx.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const landColumns = `id, owner, area, location, price, coordinates, property_id, survey_number,
	document_hash, verified, inspected, remark, for_sale, registered_at, updated_at`

func (s *PostgresStore) CreateLand(ctx context.Context, land *models.Land) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO lands (`+landColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, int64(land.ID), uuid.UUID(land.Owner), int64(land.Area), land.Location, land.Price, land.Coordinates,
		land.PropertyID, land.SurveyNumber, land.DocumentHash, land.Verified, land.Inspected, land.Remark,
		land.ForSale, land.RegisteredAt, land.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert land: %w", err)
	}
	return nil
}

// UpdateLand rewrites every mutable column. The owner index follows the
// owner column, so no separate bookkeeping is needed.
func (s *PostgresStore) UpdateLand(ctx context.Context, land *models.Land) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE lands
		SET owner = $2, area = $3, location = $4, price = $5, coordinates = $6, property_id = $7,
			survey_number = $8, document_hash = $9, verified = $10, inspected = $11, remark = $12,
			for_sale = $13, updated_at = $14
		WHERE id = $1
	`, int64(land.ID), uuid.UUID(land.Owner), int64(land.Area), land.Location, land.Price, land.Coordinates,
		land.PropertyID, land.SurveyNumber, land.DocumentHash, land.Verified, land.Inspected, land.Remark,
		land.ForSale, land.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update land: %w", err)
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

func (s *PostgresStore) FindLand(ctx context.Context, landID id.LandID) (*models.Land, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+landColumns+` FROM lands WHERE id = $1`, int64(landID))
	land, err := scanLand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find land: %w", err)
	}
	return land, nil
}

func (s *PostgresStore) ListLandsByOwner(ctx context.Context, owner id.AccountID) ([]*models.Land, error) {
	return s.queryLands(ctx, `SELECT `+landColumns+` FROM lands WHERE owner = $1 ORDER BY id`, uuid.UUID(owner))
}

func (s *PostgresStore) ListLandsForSale(ctx context.Context) ([]*models.Land, error) {
	return s.queryLands(ctx, `SELECT `+landColumns+` FROM lands WHERE for_sale ORDER BY id`)
}

func (s *PostgresStore) CountLands(ctx context.Context) (int, error) {
	var n int
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM lands`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lands: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) queryLands(ctx context.Context, query string, args ...any) ([]*models.Land, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lands: %w", err)
	}
	defer rows.Close()

	var out []*models.Land
	for rows.Next() {
		land, err := scanLand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan land: %w", err)
		}
		out = append(out, land)
	}
	return out, rows.Err()
}

// AppendDocument stores doc at the next position of the land's list.
func (s *PostgresStore) AppendDocument(ctx context.Context, landID id.LandID, doc models.Document) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO land_documents (land_id, position, hash, description, added_at)
		SELECT $1, COALESCE(MAX(position), -1) + 1, $2, $3, $4
		FROM land_documents WHERE land_id = $1
	`, int64(landID), doc.Hash, doc.Description, doc.AddedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context, landID id.LandID) ([]models.Document, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT hash, description, added_at FROM land_documents
		WHERE land_id = $1 ORDER BY position
	`, int64(landID))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.Hash, &d.Description, &d.AddedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountDocuments(ctx context.Context, landID id.LandID) (int, error) {
	var n int
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM land_documents WHERE land_id = $1`, int64(landID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) AppendHistory(ctx context.Context, landID id.LandID, entry models.HistoryEntry) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO land_history (land_id, position, description, recorded_at)
		SELECT $1, COALESCE(MAX(position), -1) + 1, $2, $3
		FROM land_history WHERE land_id = $1
	`, int64(landID), entry.Description, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListHistory(ctx context.Context, landID id.LandID) ([]models.HistoryEntry, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT description, recorded_at FROM land_history
		WHERE land_id = $1 ORDER BY position
	`, int64(landID))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.Description, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddContract(ctx context.Context, account id.AccountID, at time.Time) (bool, error) {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO authorized_contracts (account, added_at) VALUES ($1, $2)
		ON CONFLICT (account) DO NOTHING
	`, uuid.UUID(account), at)
	if err != nil {
		return false, fmt.Errorf("authorize contract: %w", err)
	}
	return affected(res)
}

func (s *PostgresStore) RemoveContract(ctx context.Context, account id.AccountID) (bool, error) {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM authorized_contracts WHERE account = $1`, uuid.UUID(account))
	if err != nil {
		return false, fmt.Errorf("deauthorize contract: %w", err)
	}
	return affected(res)
}

func (s *PostgresStore) IsContract(ctx context.Context, account id.AccountID) (bool, error) {
	var ok bool
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM authorized_contracts WHERE account = $1)`, uuid.UUID(account)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check contract: %w", err)
	}
	return ok, nil
}

func (s *PostgresStore) ListContracts(ctx context.Context) ([]id.AccountID, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT account FROM authorized_contracts ORDER BY added_at, account`)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []id.AccountID
	for rows.Next() {
		var u uuid.UUID
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, id.AccountID(u))
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLand(row scanner) (*models.Land, error) {
	var (
		l     models.Land
		rawID int64
		owner uuid.UUID
		area  int64
	)
	err := row.Scan(&rawID, &owner, &area, &l.Location, &l.Price, &l.Coordinates, &l.PropertyID,
		&l.SurveyNumber, &l.DocumentHash, &l.Verified, &l.Inspected, &l.Remark, &l.ForSale,
		&l.RegisteredAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.ID = id.LandID(rawID)
	l.Owner = id.AccountID(owner)
	l.Area = uint64(area)
	return &l, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
