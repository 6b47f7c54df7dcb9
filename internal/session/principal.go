package session

import "github.com/jobtrackr/auth-service/internal/domain"

// AuthorityStandardUser is the single capability every authenticated
// identity carries today. Authorities stay a set so future roles can be
// added without reshaping the principal.
const AuthorityStandardUser = "standard-user"

// Principal is the ephemeral, request-scoped projection of an Identity
// used for authorization downstream. It never carries the password hash
// or mailbox tokens.
type Principal struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	Authorities map[string]struct{}
}

// Resolve projects a stored identity into a session principal. Pure: no
// I/O, no failure mode.
func Resolve(id domain.Identity) Principal {
	return Principal{
		ID:        id.ID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Authorities: map[string]struct{}{
			AuthorityStandardUser: {},
		},
	}
}

func (p Principal) HasAuthority(name string) bool {
	_, ok := p.Authorities[name]
	return ok
}
