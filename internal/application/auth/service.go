package auth

import (
	"time"

	"github.com/jobtrackr/auth-service/internal/application/credential"
	"github.com/jobtrackr/auth-service/internal/audit"
	"github.com/jobtrackr/auth-service/internal/domain"
	"github.com/jobtrackr/auth-service/internal/session"
)

// TokenType is the scheme reported alongside every issued token.
const TokenType = "Bearer"

// Service orchestrates login, registration, current-identity resolution
// and mailbox-credential linkage. It is the single entry point the rest
// of the application depends on; the vault and codec are internals.
type Service struct {
	store  IdentityStore
	hasher PasswordHasher
	codec  TokenCodec
	vault  *credential.Vault
	audit  *audit.Logger

	now func() time.Time
}

func NewService(store IdentityStore, hasher PasswordHasher, codec TokenCodec, vault *credential.Vault, aud *audit.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		codec:  codec,
		vault:  vault,
		audit:  aud,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// LoginResult is what a successful authentication hands back: the
// reloaded identity, its session principal and the bearer token.
type LoginResult struct {
	Identity  domain.Identity
	Principal session.Principal
	Token     string
	TokenType string
}
