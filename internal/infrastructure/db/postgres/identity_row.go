package postgres

import (
	"database/sql"
	"time"

	"github.com/jobtrackr/auth-service/internal/domain"
)

// identityRow mirrors the users table. The mailbox token pair and the
// password hash are stored as opaque text; their format is the store's
// concern, not this adapter's.
type identityRow struct {
	ID                  string
	Email               string
	PasswordHash        string
	FirstName           sql.NullString
	LastName            sql.NullString
	MailboxAccessToken  string
	MailboxRefreshToken string
	MailboxConnected    bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func toDomain(r identityRow) domain.Identity {
	return domain.Identity{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName.String,
		LastName:     r.LastName.String,
		Mailbox: domain.CredentialState{
			AccessToken:  r.MailboxAccessToken,
			RefreshToken: r.MailboxRefreshToken,
			Connected:    r.MailboxConnected,
		},
		Active: r.IsActive,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
