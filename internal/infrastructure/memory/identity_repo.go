package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jobtrackr/auth-service/internal/domain"
)

// IdentityRepo is an in-memory identity store for tests and dev runs.
// The mutex gives it the per-row read-modify-write atomicity the
// application layer requires from every adapter.
type IdentityRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.Identity
	byEmail map[string]string // normalized email -> id
}

func NewIdentityRepo() *IdentityRepo {
	return &IdentityRepo{
		byID:    make(map[string]domain.Identity),
		byEmail: make(map[string]string),
	}
}

func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Identity{}, domain.ErrIdentityNotFound()
	}
	return r.byID[id], nil
}

func (r *IdentityRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[domain.NormalizeEmail(email)]
	return ok, nil
}

// Save upserts the identity, assigning an id on first save.
func (r *IdentityRepo) Save(ctx context.Context, id domain.Identity) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id.Email = domain.NormalizeEmail(id.Email)
	if id.Email == "" {
		return domain.Identity{}, domain.ErrMissingField("email")
	}

	if other, taken := r.byEmail[id.Email]; taken && other != id.ID {
		return domain.Identity{}, domain.ErrDuplicateEmail()
	}

	if id.ID == "" {
		id.ID = uuid.NewString()
	} else if prev, ok := r.byID[id.ID]; ok && prev.Email != id.Email {
		delete(r.byEmail, prev.Email)
	}

	r.byID[id.ID] = id
	r.byEmail[id.Email] = id.ID
	return id, nil
}
