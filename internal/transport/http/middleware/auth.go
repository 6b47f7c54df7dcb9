package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/application/auth"
	"github.com/jobtrackr/auth-service/internal/domain"
	"github.com/jobtrackr/auth-service/internal/session"
	"github.com/jobtrackr/auth-service/internal/transport/http/response"
)

// Authenticator gates protected routes on a valid bearer token. It resolves
// the token subject against the identity store so a deactivated or deleted
// identity is rejected even while its token is still within its window.
type Authenticator struct {
	codec auth.TokenCodec
	store auth.IdentityStore
	log   zerolog.Logger
}

func NewAuthenticator(codec auth.TokenCodec, store auth.IdentityStore, log zerolog.Logger) *Authenticator {
	return &Authenticator{codec: codec, store: store, log: log}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			response.WriteErr(w, r, err, a.log)
			return
		}

		// Validate collapses every decode failure to a single opaque
		// rejection; the detailed reason stays in the server log.
		if !a.codec.Validate(token) {
			response.WriteErr(w, r, domain.ErrTokenInvalid(), a.log)
			return
		}

		subject, err := a.codec.DecodeSubject(token)
		if err != nil {
			response.WriteErr(w, r, domain.ErrTokenInvalid(), a.log)
			return
		}

		id, err := a.store.FindByEmail(r.Context(), subject)
		if err != nil {
			if domain.Is(err, "identity_not_found") {
				response.WriteErr(w, r, domain.ErrTokenInvalid(), a.log)
				return
			}
			response.WriteErr(w, r, err, a.log)
			return
		}
		if !id.Active {
			response.WriteErr(w, r, domain.ErrTokenInvalid(), a.log)
			return
		}

		ctx := session.WithPrincipal(r.Context(), session.Resolve(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrTokenMissing()
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", domain.ErrTokenInvalid()
	}
	return strings.TrimSpace(token), nil
}
