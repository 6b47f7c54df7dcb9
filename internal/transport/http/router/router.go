package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jobtrackr/auth-service/internal/transport/http/middleware"
)

// AuthHandlers is the handler surface the router mounts.
type AuthHandlers interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	ConnectMailbox(w http.ResponseWriter, r *http.Request)
	DisconnectMailbox(w http.ResponseWriter, r *http.Request)
}

type HealthHandlers interface {
	Health(w http.ResponseWriter, r *http.Request)
}

// Deps carries everything the router mounts. RegisterLimit and LoginLimit
// are optional; nil disables rate limiting for that route.
type Deps struct {
	Auth   AuthHandlers
	Health HealthHandlers
	AuthMW func(http.Handler) http.Handler

	RegisterLimit func(http.Handler) http.Handler
	LoginLimit    func(http.Handler) http.Handler
}

func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", deps.Health.Health)

	r.Route("/auth/v1", func(r chi.Router) {
		r.With(maybe(deps.RegisterLimit)).Post("/register", deps.Auth.Register)
		r.With(maybe(deps.LoginLimit)).Post("/login", deps.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Get("/me", deps.Auth.Me)
			r.Post("/mailbox/connect", deps.Auth.ConnectMailbox)
			r.Delete("/mailbox", deps.Auth.DisconnectMailbox)
		})
	})

	return r
}

func maybe(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
