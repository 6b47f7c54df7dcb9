package auth

import (
	"context"

	"github.com/jobtrackr/auth-service/internal/domain"
	"github.com/jobtrackr/auth-service/internal/session"
)

// Login authenticates by email and password and issues a session token
// keyed on the normalized email. Unknown email, inactive identity and
// wrong password are indistinguishable to the caller (constant-shape
// invalid_credentials, to avoid account enumeration). Neither the
// password nor the issued token value is ever logged.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = domain.NormalizeEmail(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	id, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "identity_not_found") {
			s.audit.LoginFailed(ctx, email)
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		// store outages are not logical rejections; surface them as-is
		return LoginResult{}, err
	}

	if !id.Active {
		s.audit.LoginFailed(ctx, email)
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(id.PasswordHash, password); err != nil {
		s.audit.LoginFailed(ctx, email)
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	tok, err := s.codec.Issue(id.Email, s.now())
	if err != nil {
		return LoginResult{}, err
	}

	s.audit.LoginSucceeded(ctx, id.ID, id.Email)

	return LoginResult{
		Identity:  id,
		Principal: session.Resolve(id),
		Token:     tok,
		TokenType: TokenType,
	}, nil
}
