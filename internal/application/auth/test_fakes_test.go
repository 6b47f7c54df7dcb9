package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/application/credential"
	"github.com/jobtrackr/auth-service/internal/audit"
	"github.com/jobtrackr/auth-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeIdentityStore struct {
	mu sync.Mutex

	byEmail map[string]domain.Identity
	nextID  int

	// injected errors (if set, method returns error)
	findErr   error
	existsErr error
	saveErr   error
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{byEmail: map[string]domain.Identity{}}
}

func (f *fakeIdentityStore) FindByEmail(ctx context.Context, email string) (domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.Identity{}, f.findErr
	}
	id, ok := f.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Identity{}, domain.ErrIdentityNotFound()
	}
	return id, nil
}

func (f *fakeIdentityStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[domain.NormalizeEmail(email)]
	return ok, nil
}

func (f *fakeIdentityStore) Save(ctx context.Context, id domain.Identity) (domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return domain.Identity{}, f.saveErr
	}
	if id.ID == "" {
		f.nextID++
		id.ID = fmt.Sprintf("id-%d", f.nextID)
	}
	f.byEmail[domain.NormalizeEmail(id.Email)] = id
	return id, nil
}

// seed inserts an identity directly, bypassing Save's id assignment.
func (f *fakeIdentityStore) seed(id domain.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[domain.NormalizeEmail(id.Email)] = id
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeCodec struct {
	issueErr  error
	decodeErr error
}

func (f *fakeCodec) Issue(subject string, now time.Time) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "tok:" + subject, nil
}

func (f *fakeCodec) DecodeSubject(token string) (string, error) {
	if f.decodeErr != nil {
		return "", f.decodeErr
	}
	if len(token) < 5 || token[:4] != "tok:" {
		return "", domain.ErrTokenMalformed()
	}
	return token[4:], nil
}

func (f *fakeCodec) Validate(token string) bool {
	_, err := f.DecodeSubject(token)
	return err == nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeIdentityStore, *fakeHasher, *fakeCodec) {
	t.Helper()

	store := newFakeIdentityStore()
	hasher := &fakeHasher{}
	codec := &fakeCodec{}
	aud := audit.New(zerolog.Nop())
	svc := NewService(store, hasher, codec, credential.NewVault(store, aud), aud)
	return svc, store, hasher, codec
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
