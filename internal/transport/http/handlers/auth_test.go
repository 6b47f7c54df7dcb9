package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrackr/auth-service/internal/application/auth"
	"github.com/jobtrackr/auth-service/internal/domain"
)

type stubService struct {
	registerFn   func(ctx context.Context, email, password, firstName, lastName string) (domain.Identity, error)
	loginFn      func(ctx context.Context, email, password string) (auth.LoginResult, error)
	currentFn    func(ctx context.Context) (domain.Identity, error)
	connectFn    func(ctx context.Context, id *domain.Identity, at, rt string) error
	disconnectFn func(ctx context.Context, id *domain.Identity) error
}

func (s *stubService) Register(ctx context.Context, email, password, firstName, lastName string) (domain.Identity, error) {
	return s.registerFn(ctx, email, password, firstName, lastName)
}

func (s *stubService) Login(ctx context.Context, email, password string) (auth.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubService) CurrentIdentity(ctx context.Context) (domain.Identity, error) {
	return s.currentFn(ctx)
}

func (s *stubService) ConnectMailbox(ctx context.Context, id *domain.Identity, at, rt string) error {
	return s.connectFn(ctx, id, at, rt)
}

func (s *stubService) DisconnectMailbox(ctx context.Context, id *domain.Identity) error {
	return s.disconnectFn(ctx, id)
}

func decodeData(t *testing.T, body string) map[string]any {
	t.Helper()
	var out struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out.Data
}

func TestRegister_Created(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		registerFn: func(_ context.Context, email, password, firstName, lastName string) (domain.Identity, error) {
			return domain.Identity{ID: "id-1", Email: email, FirstName: firstName, LastName: lastName, Active: true}, nil
		},
	}
	h := NewAuthHandler(svc, zerolog.Nop())

	body := `{"email":"alice@example.com","password":"secret123","first_name":"Alice","last_name":"Smith"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeData(t, rec.Body.String())
	assert.Equal(t, "id-1", data["id"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, false, data["mailbox_connected"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_BadJSON(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&stubService{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&stubService{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_field")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		registerFn: func(context.Context, string, string, string, string) (domain.Identity, error) {
			return domain.Identity{}, domain.ErrDuplicateEmail()
		},
	}
	h := NewAuthHandler(svc, zerolog.Nop())

	body := `{"email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate_email")
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		loginFn: func(_ context.Context, email, _ string) (auth.LoginResult, error) {
			return auth.LoginResult{
				Identity:  domain.Identity{Email: email, FirstName: "Alice", Active: true},
				Token:     "signed-token",
				TokenType: auth.TokenType,
			}, nil
		},
	}
	h := NewAuthHandler(svc, zerolog.Nop())

	body := `{"email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.String())
	assert.Equal(t, "signed-token", data["token"])
	assert.Equal(t, "Bearer", data["token_type"])
	assert.Equal(t, "alice@example.com", data["email"])
}

func TestLogin_MalformedEmailLooksLikeBadCredentials(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&stubService{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", strings.NewReader(`{"email":"nope","password":"x"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestLogin_RejectedCredentials(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		loginFn: func(context.Context, string, string) (auth.LoginResult, error) {
			return auth.LoginResult{}, domain.ErrInvalidCredentials()
		},
	}
	h := NewAuthHandler(svc, zerolog.Nop())

	body := `{"email":"alice@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestMe_OK(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		currentFn: func(context.Context) (domain.Identity, error) {
			return domain.Identity{
				ID: "id-1", Email: "alice@example.com", Active: true,
				Mailbox: domain.CredentialState{AccessToken: "oauth-access-token", RefreshToken: "oauth-refresh-token", Connected: true},
			}, nil
		},
	}
	h := NewAuthHandler(svc, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/auth/v1/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.String())
	assert.Equal(t, true, data["mailbox_connected"])
	assert.NotContains(t, rec.Body.String(), "oauth-access-token")
}

func TestMe_NoSession(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		currentFn: func(context.Context) (domain.Identity, error) {
			return domain.Identity{}, domain.ErrNoActiveSession()
		},
	}
	h := NewAuthHandler(svc, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/auth/v1/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
