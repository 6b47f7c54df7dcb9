package credential

import (
	"context"
	"strings"

	"github.com/jobtrackr/auth-service/internal/audit"
	"github.com/jobtrackr/auth-service/internal/domain"
)

/*
IdentityWriter
--------------
The slice of the identity store the vault needs: synchronous persistence
of a mutated identity. Per-row read-modify-write atomicity is the
adapter's responsibility.
*/
type IdentityWriter interface {
	Save(ctx context.Context, id domain.Identity) (domain.Identity, error)
}

// Vault owns the mailbox-credential linkage state on an identity:
// connected with both tokens present, or disconnected with both cleared.
// It never inspects token contents; they are opaque blobs.
type Vault struct {
	store IdentityWriter
	audit *audit.Logger
}

func NewVault(store IdentityWriter, aud *audit.Logger) *Vault {
	return &Vault{store: store, audit: aud}
}

// Link stores the mailbox token pair and marks the identity connected.
// Both tokens must be non-empty; an empty input is rejected before any
// mutation, so prior state survives. The persistence call completes
// before Link returns success; if it fails, the in-memory identity
// already carries the new linkage and the caller must treat the durable
// state as unknown and re-query.
func (v *Vault) Link(ctx context.Context, id *domain.Identity, accessToken, refreshToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return domain.ErrInvalidCredential("access_token")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return domain.ErrInvalidCredential("refresh_token")
	}

	id.Mailbox = domain.CredentialState{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Connected:    true,
	}

	saved, err := v.store.Save(ctx, *id)
	if err != nil {
		return err
	}
	*id = saved

	v.audit.CredentialLinked(ctx, id.ID)
	return nil
}

// Unlink clears the token pair and marks the identity disconnected.
// Unlinking an already-unlinked identity succeeds silently without a
// store write.
func (v *Vault) Unlink(ctx context.Context, id *domain.Identity) error {
	if !id.Mailbox.Connected && id.Mailbox.AccessToken == "" && id.Mailbox.RefreshToken == "" {
		return nil
	}

	id.Mailbox = domain.CredentialState{}

	saved, err := v.store.Save(ctx, *id)
	if err != nil {
		return err
	}
	*id = saved

	v.audit.CredentialUnlinked(ctx, id.ID)
	return nil
}
