package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/application/auth"
	"github.com/jobtrackr/auth-service/internal/domain"
	"github.com/jobtrackr/auth-service/internal/transport/http/dto"
	"github.com/jobtrackr/auth-service/internal/transport/http/response"
)

// AuthService is the application surface the HTTP layer depends on.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (domain.Identity, error)
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
	CurrentIdentity(ctx context.Context) (domain.Identity, error)
	ConnectMailbox(ctx context.Context, id *domain.Identity, accessToken, refreshToken string) error
	DisconnectMailbox(ctx context.Context, id *domain.Identity) error
}

type AuthHandler struct {
	svc AuthService
	log zerolog.Logger
}

func NewAuthHandler(svc AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}

	id, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	response.Created(w, r, dto.NewIdentityView(id))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	if err := req.Validate(); err != nil {
		// Validation detail would distinguish "malformed email" from
		// "unknown email"; collapse it like any other bad credential.
		response.WriteErr(w, r, domain.ErrInvalidCredentials(), h.log)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	response.OK(w, r, dto.NewLoginResponse(res))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.CurrentIdentity(r.Context())
	if err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	response.OK(w, r, dto.NewIdentityView(id))
}
