package audit

import (
	"context"

	"github.com/rs/zerolog"

	appctx "github.com/jobtrackr/auth-service/internal/pkg/context"
)

// Logger emits structured audit entries for auth and credential-linkage
// events. Entries carry identity-stable context only: emails are masked,
// passwords and mailbox tokens never appear.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

func (l *Logger) Registered(ctx context.Context, identityID, email string) {
	l.log.Info().
		Str("action", "registered").
		Str("identity_id", identityID).
		Str("email", maskEmail(email)).
		Str("request_id", appctx.GetRequestID(ctx)).
		Msg("identity registered")
}

func (l *Logger) LoginSucceeded(ctx context.Context, identityID, email string) {
	l.log.Info().
		Str("action", "login_success").
		Str("identity_id", identityID).
		Str("email", maskEmail(email)).
		Str("request_id", appctx.GetRequestID(ctx)).
		Msg("login succeeded")
}

func (l *Logger) LoginFailed(ctx context.Context, email string) {
	l.log.Warn().
		Str("action", "login_failed").
		Str("email", maskEmail(email)).
		Str("request_id", appctx.GetRequestID(ctx)).
		Msg("login rejected")
}

func (l *Logger) CredentialLinked(ctx context.Context, identityID string) {
	l.log.Info().
		Str("action", "linked").
		Str("identity_id", identityID).
		Str("request_id", appctx.GetRequestID(ctx)).
		Msg("mailbox credential linked")
}

func (l *Logger) CredentialUnlinked(ctx context.Context, identityID string) {
	l.log.Info().
		Str("action", "unlinked").
		Str("identity_id", identityID).
		Str("request_id", appctx.GetRequestID(ctx)).
		Msg("mailbox credential unlinked")
}

// maskEmail partially masks an email for privacy in logs.
func maskEmail(email string) string {
	if len(email) < 5 {
		return "***"
	}
	at := 0
	for i, c := range email {
		if c == '@' {
			at = i
			break
		}
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
