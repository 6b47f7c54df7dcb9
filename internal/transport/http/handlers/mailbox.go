package handlers

import (
	"net/http"

	"github.com/jobtrackr/auth-service/internal/transport/http/dto"
	"github.com/jobtrackr/auth-service/internal/transport/http/response"
)

func (h *AuthHandler) ConnectMailbox(w http.ResponseWriter, r *http.Request) {
	var req dto.ConnectMailboxRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}

	id, err := h.svc.CurrentIdentity(r.Context())
	if err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	if err := h.svc.ConnectMailbox(r.Context(), &id, req.AccessToken, req.RefreshToken); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	response.OK(w, r, dto.NewIdentityView(id))
}

func (h *AuthHandler) DisconnectMailbox(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.CurrentIdentity(r.Context())
	if err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	if err := h.svc.DisconnectMailbox(r.Context(), &id); err != nil {
		response.WriteErr(w, r, err, h.log)
		return
	}
	response.NoContent(w)
}
