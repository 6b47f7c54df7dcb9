package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jobtrackr/auth-service/internal/domain"
)

const identityColumns = `id, email, password_hash, first_name, last_name,
mailbox_access_token, mailbox_refresh_token, mailbox_connected, is_active, created_at, updated_at`

// IdentityRepo is the Postgres identity-store adapter. Emails are stored
// normalized, so equality lookups stay index-friendly; the unique
// constraint on email enforces case-insensitive uniqueness.
type IdentityRepo struct {
	db *sql.DB
}

func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{db: db}
}

func (r *IdentityRepo) scanRow(row *sql.Row) (identityRow, error) {
	var ir identityRow
	err := row.Scan(
		&ir.ID,
		&ir.Email,
		&ir.PasswordHash,
		&ir.FirstName,
		&ir.LastName,
		&ir.MailboxAccessToken,
		&ir.MailboxRefreshToken,
		&ir.MailboxConnected,
		&ir.IsActive,
		&ir.CreatedAt,
		&ir.UpdatedAt,
	)
	return ir, err
}

func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Identity{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + identityColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ir, err := r.scanRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Identity{}, domain.ErrIdentityNotFound()
		}
		return domain.Identity{}, domain.ErrStoreUnavailable(err)
	}
	return toDomain(ir), nil
}

func (r *IdentityRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, domain.ErrMissingField("email")
	}

	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1);`

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&exists); err != nil {
		return false, domain.ErrStoreUnavailable(err)
	}
	return exists, nil
}

// Save upserts by id, minting one on first save. The single-statement
// upsert gives the per-row atomicity the application layer requires.
func (r *IdentityRepo) Save(ctx context.Context, id domain.Identity) (domain.Identity, error) {
	id.Email = domain.NormalizeEmail(id.Email)
	if id.Email == "" {
		return domain.Identity{}, domain.ErrMissingField("email")
	}
	if id.PasswordHash == "" {
		return domain.Identity{}, domain.ErrMissingField("password_hash")
	}
	if id.ID == "" {
		id.ID = uuid.NewString()
	}

	const q = `
INSERT INTO users (` + identityColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
ON CONFLICT (id) DO UPDATE SET
    email                 = EXCLUDED.email,
    password_hash         = EXCLUDED.password_hash,
    first_name            = EXCLUDED.first_name,
    last_name             = EXCLUDED.last_name,
    mailbox_access_token  = EXCLUDED.mailbox_access_token,
    mailbox_refresh_token = EXCLUDED.mailbox_refresh_token,
    mailbox_connected     = EXCLUDED.mailbox_connected,
    is_active             = EXCLUDED.is_active,
    updated_at            = now()
RETURNING ` + identityColumns + `;
`
	ir, err := r.scanRow(r.db.QueryRowContext(ctx, q,
		id.ID,
		id.Email,
		id.PasswordHash,
		nullable(id.FirstName),
		nullable(id.LastName),
		id.Mailbox.AccessToken,
		id.Mailbox.RefreshToken,
		id.Mailbox.Connected,
		id.Active,
	))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.Identity{}, domain.ErrDuplicateEmail()
		}
		return domain.Identity{}, domain.ErrStoreUnavailable(err)
	}
	return toDomain(ir), nil
}

// Ping reports store reachability for the health endpoint.
func (r *IdentityRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
