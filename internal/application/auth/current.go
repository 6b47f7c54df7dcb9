package auth

import (
	"context"

	"github.com/jobtrackr/auth-service/internal/domain"
	"github.com/jobtrackr/auth-service/internal/session"
)

// CurrentIdentity reloads the authoritative record for the principal
// attached to the request context. Tokens are not invalidated by
// deletion, so a record can vanish between issuance and use; that
// surfaces as identity_not_found.
func (s *Service) CurrentIdentity(ctx context.Context) (domain.Identity, error) {
	p, ok := session.FromContext(ctx)
	if !ok {
		return domain.Identity{}, domain.ErrNoActiveSession()
	}

	id, err := s.store.FindByEmail(ctx, p.Email)
	if err != nil {
		if domain.Is(err, "identity_not_found") {
			return domain.Identity{}, domain.ErrIdentityNotFound()
		}
		return domain.Identity{}, err
	}
	return id, nil
}
