package auth

import (
	"context"

	"github.com/jobtrackr/auth-service/internal/domain"
)

// ConnectMailbox and DisconnectMailbox delegate to the credential vault
// so the service stays the single entry point other components use.

func (s *Service) ConnectMailbox(ctx context.Context, id *domain.Identity, accessToken, refreshToken string) error {
	return s.vault.Link(ctx, id, accessToken, refreshToken)
}

func (s *Service) DisconnectMailbox(ctx context.Context, id *domain.Identity) error {
	return s.vault.Unlink(ctx, id)
}
