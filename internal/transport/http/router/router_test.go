package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingHandlers struct {
	calls []string
}

func (h *recordingHandlers) record(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.calls = append(h.calls, name)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *recordingHandlers) Register(w http.ResponseWriter, r *http.Request) {
	h.record("register")(w, r)
}
func (h *recordingHandlers) Login(w http.ResponseWriter, r *http.Request) { h.record("login")(w, r) }
func (h *recordingHandlers) Me(w http.ResponseWriter, r *http.Request)    { h.record("me")(w, r) }
func (h *recordingHandlers) ConnectMailbox(w http.ResponseWriter, r *http.Request) {
	h.record("connect")(w, r)
}
func (h *recordingHandlers) DisconnectMailbox(w http.ResponseWriter, r *http.Request) {
	h.record("disconnect")(w, r)
}
func (h *recordingHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.record("health")(w, r)
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(h *recordingHandlers, authMW func(http.Handler) http.Handler) http.Handler {
	return New(Deps{Auth: h, Health: h, AuthMW: authMW})
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/auth/v1/register", "register"},
		{http.MethodPost, "/auth/v1/login", "login"},
		{http.MethodGet, "/auth/v1/me", "me"},
		{http.MethodPost, "/auth/v1/mailbox/connect", "connect"},
		{http.MethodDelete, "/auth/v1/mailbox", "disconnect"},
		{http.MethodGet, "/healthz", "health"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			t.Parallel()
			h := &recordingHandlers{}
			rec := httptest.NewRecorder()
			newTestRouter(h, passThrough).ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{tc.want}, h.calls)
		})
	}
}

func TestRouter_ProtectedRoutesUseAuthMW(t *testing.T) {
	t.Parallel()

	reject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/v1/me"},
		{http.MethodPost, "/auth/v1/mailbox/connect"},
		{http.MethodDelete, "/auth/v1/mailbox"},
	} {
		h := &recordingHandlers{}
		rec := httptest.NewRecorder()
		newTestRouter(h, reject).ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
		assert.Empty(t, h.calls, tc.path)
	}
}

func TestRouter_PublicRoutesSkipAuthMW(t *testing.T) {
	t.Parallel()

	reject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	h := &recordingHandlers{}
	rec := httptest.NewRecorder()
	newTestRouter(h, reject).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SetsRequestID(t *testing.T) {
	t.Parallel()

	h := &recordingHandlers{}
	rec := httptest.NewRecorder()
	newTestRouter(h, passThrough).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	h := &recordingHandlers{}
	rec := httptest.NewRecorder()
	newTestRouter(h, passThrough).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
