package auth

import (
	"context"
	"time"

	"github.com/jobtrackr/auth-service/internal/domain"
)

/*
IdentityStore
-------------
Persistence port for identities, owned by the external Application
Store boundary. Only describes WHAT this service needs, not HOW it is
stored.

The adapter must provide at least read-modify-write atomicity per
identity row; this core does no in-process locking, so without it
concurrent link/unlink calls for the same identity can race.
*/
type IdentityStore interface {
	// FindByEmail looks up an identity by normalized email.
	FindByEmail(ctx context.Context, email string) (domain.Identity, error)
	// ExistsByEmail reports whether a record exists for the normalized email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save upserts the identity, assigning an id on first save.
	Save(ctx context.Context, id domain.Identity) (domain.Identity, error)
}

/*
PasswordHasher
--------------
Abstracts the one-way hash. Cost parameters are fixed at construction.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenCodec
----------
Issues and decodes the stateless session token. Used by the service and
by the request-ingress middleware.
*/
type TokenCodec interface {
	Issue(subject string, now time.Time) (string, error)
	DecodeSubject(token string) (string, error)
	Validate(token string) bool
}
