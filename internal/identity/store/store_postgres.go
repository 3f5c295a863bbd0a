package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"landregistry/internal/identity/models"
	"landregistry/internal/platform/postgres"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
	txcontext "landregistry/pkg/platform/tx"
)

// PostgresStore persists identity state. Writes run inside the ledger
// transaction carried in ctx.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `account, name, age, city, national_id, tax_id, document_hash, email,
	verified, registered_at, verified_at, verified_by`

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, uuid.UUID(user.Account), user.Name, int64(user.Age), user.City, user.NationalID, user.TaxID,
		user.DocumentHash, user.Email, user.Verified, user.RegisteredAt, user.VerifiedAt, nullAccount(user.VerifiedBy))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE users
		SET verified = $2, verified_at = $3, verified_by = $4
		WHERE account = $1
	`, uuid.UUID(user.Account), user.Verified, user.VerifiedAt, nullAccount(user.VerifiedBy))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindUser(ctx context.Context, account id.AccountID) (*models.User, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE account = $1`, uuid.UUID(account))

	var (
		u          models.User
		acct       uuid.UUID
		age        int64
		verifiedAt sql.NullTime
		verifiedBy uuid.NullUUID
	)
	err := row.Scan(&acct, &u.Name, &age, &u.City, &u.NationalID, &u.TaxID, &u.DocumentHash, &u.Email,
		&u.Verified, &u.RegisteredAt, &verifiedAt, &verifiedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Account = id.AccountID(acct)
	u.Age = uint32(age)
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	if verifiedBy.Valid {
		u.VerifiedBy = id.AccountID(verifiedBy.UUID)
	}
	return &u, nil
}

func (s *PostgresStore) NationalIDTaken(ctx context.Context, nationalID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE national_id = $1)`, nationalID)
}

func (s *PostgresStore) TaxIDTaken(ctx context.Context, taxID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE tax_id = $1)`, taxID)
}

func (s *PostgresStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists check: %w", err)
	}
	return ok, nil
}

func (s *PostgresStore) GrantRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error) {
	roles, err := s.ListRoles(ctx, account)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == role {
			return false, nil
		}
	}
	return true, s.saveRoles(ctx, account, append(roles, role))
}

func (s *PostgresStore) RevokeRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error) {
	roles, err := s.ListRoles(ctx, account)
	if err != nil {
		return false, err
	}
	kept := roles[:0]
	for _, r := range roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(roles) {
		return false, nil
	}
	return true, s.saveRoles(ctx, account, kept)
}

func (s *PostgresStore) saveRoles(ctx context.Context, account id.AccountID, roles []id.Role) error {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO account_roles (account, roles) VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET roles = EXCLUDED.roles
	`, uuid.UUID(account), pq.Array(names))
	if err != nil {
		return fmt.Errorf("save roles: %w", err)
	}
	return nil
}

func (s *PostgresStore) HasRole(ctx context.Context, account id.AccountID, role id.Role) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM account_roles WHERE account = $1 AND $2 = ANY(roles))`,
		uuid.UUID(account), string(role))
}

// ListRoles returns held roles in the canonical role order.
func (s *PostgresStore) ListRoles(ctx context.Context, account id.AccountID) ([]id.Role, error) {
	var names []string
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT roles FROM account_roles WHERE account = $1`, uuid.UUID(account)).Scan(pq.Array(&names))
	if errors.Is(err, sql.ErrNoRows) {
		return []id.Role{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	held := make(map[string]struct{}, len(names))
	for _, n := range names {
		held[n] = struct{}{}
	}
	roles := make([]id.Role, 0, len(names))
	for _, r := range id.Roles {
		if _, ok := held[string(r)]; ok {
			roles = append(roles, r)
		}
	}
	return roles, nil
}

func (s *PostgresStore) CreateInspector(ctx context.Context, inspector *models.Inspector) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO inspectors (id, account, name, age, designation, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, int64(inspector.ID), uuid.UUID(inspector.Account), inspector.Name, int64(inspector.Age),
		inspector.Designation, inspector.AddedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert inspector: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteInspector(ctx context.Context, account id.AccountID) (*models.Inspector, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		DELETE FROM inspectors WHERE account = $1
		RETURNING id, account, name, age, designation, added_at
	`, uuid.UUID(account))
	return scanInspector(row)
}

func (s *PostgresStore) FindInspector(ctx context.Context, inspectorID id.InspectorID) (*models.Inspector, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, account, name, age, designation, added_at FROM inspectors WHERE id = $1
	`, int64(inspectorID))
	return scanInspector(row)
}

func (s *PostgresStore) FindInspectorByAccount(ctx context.Context, account id.AccountID) (*models.Inspector, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, account, name, age, designation, added_at FROM inspectors WHERE account = $1
	`, uuid.UUID(account))
	return scanInspector(row)
}

func (s *PostgresStore) ListInspectors(ctx context.Context) ([]*models.Inspector, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, account, name, age, designation, added_at FROM inspectors ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list inspectors: %w", err)
	}
	defer rows.Close()

	var out []*models.Inspector
	for rows.Next() {
		inspector, err := scanInspector(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inspector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inspectors: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInspector(row scanner) (*models.Inspector, error) {
	var (
		inspector models.Inspector
		rawID     int64
		account   uuid.UUID
		age       int64
	)
	err := row.Scan(&rawID, &account, &inspector.Name, &age, &inspector.Designation, &inspector.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan inspector: %w", err)
	}
	inspector.ID = id.InspectorID(rawID)
	inspector.Account = id.AccountID(account)
	inspector.Age = uint32(age)
	return &inspector, nil
}

func (s *PostgresStore) Owner(ctx context.Context) (id.AccountID, error) {
	var owner uuid.NullUUID
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT owner FROM registry_settings WHERE id = 1`).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !owner.Valid) {
		return id.NilAccount, nil
	}
	if err != nil {
		return id.NilAccount, fmt.Errorf("load owner: %w", err)
	}
	return id.AccountID(owner.UUID), nil
}

func (s *PostgresStore) SetOwner(ctx context.Context, owner id.AccountID) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registry_settings (id, owner, paused) VALUES (1, $1, FALSE)
		ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner
	`, uuid.UUID(owner))
	if err != nil {
		return fmt.Errorf("set owner: %w", err)
	}
	return nil
}

func (s *PostgresStore) Paused(ctx context.Context) (bool, error) {
	var paused bool
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT paused FROM registry_settings WHERE id = 1`).Scan(&paused)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load pause state: %w", err)
	}
	return paused, nil
}

func (s *PostgresStore) SetPaused(ctx context.Context, paused bool) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registry_settings (id, owner, paused) VALUES (1, NULL, $1)
		ON CONFLICT (id) DO UPDATE SET paused = EXCLUDED.paused
	`, paused)
	if err != nil {
		return fmt.Errorf("set pause state: %w", err)
	}
	return nil
}

func nullAccount(a id.AccountID) uuid.NullUUID {
	if a.IsNil() {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(a), Valid: true}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
