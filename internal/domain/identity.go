package domain

import "strings"

// CredentialState is the stored mailbox OAuth token pair.
// Connected is true iff both tokens were set by a successful link;
// unlinking clears both fields, never leaving stale values behind.
type CredentialState struct {
	AccessToken  string
	RefreshToken string
	Connected    bool
}

// Identity is the durable account record. PasswordHash never crosses the
// service boundary except for verification during login.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Mailbox      CredentialState
	Active       bool
}

// NormalizeEmail is the canonical form used for lookups and uniqueness.
// The store guarantees case-insensitive uniqueness; everything above it
// normalizes before comparing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
