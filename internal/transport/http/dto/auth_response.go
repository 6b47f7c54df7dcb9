package dto

import (
	"github.com/jobtrackr/auth-service/internal/application/auth"
	"github.com/jobtrackr/auth-service/internal/domain"
)

// IdentityView is the public projection of an identity. Password hashes and
// mailbox tokens never leave the service.
type IdentityView struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MailboxConnected bool   `json:"mailbox_connected"`
	Active           bool   `json:"active"`
}

func NewIdentityView(id domain.Identity) IdentityView {
	return IdentityView{
		ID:               id.ID,
		Email:            id.Email,
		FirstName:        id.FirstName,
		LastName:         id.LastName,
		MailboxConnected: id.Mailbox.Connected,
		Active:           id.Active,
	}
}

type LoginResponse struct {
	Token            string `json:"token"`
	TokenType        string `json:"token_type"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MailboxConnected bool   `json:"mailbox_connected"`
}

func NewLoginResponse(res auth.LoginResult) LoginResponse {
	return LoginResponse{
		Token:            res.Token,
		TokenType:        res.TokenType,
		Email:            res.Identity.Email,
		FirstName:        res.Identity.FirstName,
		LastName:         res.Identity.LastName,
		MailboxConnected: res.Identity.Mailbox.Connected,
	}
}
