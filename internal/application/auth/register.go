package auth

import (
	"context"

	"github.com/jobtrackr/auth-service/internal/domain"
)

// Register creates a new active identity with no mailbox credential.
// The email is normalized before the uniqueness check, so differing case
// still collides into duplicate_email.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Identity{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.Identity{}, domain.ErrMissingField("password")
	}

	exists, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	if exists {
		return domain.Identity{}, domain.ErrDuplicateEmail()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Identity{}, domain.ErrHashFailed(err)
	}

	id := domain.Identity{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Active:       true,
	}

	// Save assigns the id. A racing duplicate still surfaces here as
	// duplicate_email from the store's uniqueness constraint.
	saved, err := s.store.Save(ctx, id)
	if err != nil {
		return domain.Identity{}, err
	}

	s.audit.Registered(ctx, saved.ID, saved.Email)
	return saved, nil
}
