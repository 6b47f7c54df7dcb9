package security

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/domain"
)

// minKeyBytes is the minimum decoded signing-key length (256 bits).
const minKeyBytes = 32

// TokenCodec issues and decodes the stateless HS256 session token. The
// signing key is derived once at startup and never mutated afterwards,
// so a single codec is safe for unlimited concurrent use.
type TokenCodec struct {
	key []byte
	ttl time.Duration
	log zerolog.Logger
}

// NewTokenCodec decodes the base64 secret and fails fast when it carries
// fewer than 256 bits. A weak key is a configuration error; the process
// must not come up with it.
func NewTokenCodec(secretB64 string, ttl time.Duration, log zerolog.Logger) (*TokenCodec, error) {
	key, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("token secret is not valid base64: %w", err)
	}
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("token secret decodes to %d bytes, need at least %d", len(key), minKeyBytes)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenCodec{key: key, ttl: ttl, log: log}, nil
}

// Issue signs a token binding subject to now and now+ttl.
func (c *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.key)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// DecodeSubject verifies the token and returns its subject. Failures map
// to exactly one of the token_empty / token_malformed / token_expired /
// token_unsupported codes; callers branch on the code, not the message.
// Expiry is compared against wall-clock time here; skew is not
// compensated.
func (c *TokenCodec) DecodeSubject(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", domain.ErrTokenEmpty()
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		// prevent alg confusion: only HS256 tokens were ever issued
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenUnsupported()
		}
		return c.key, nil
	})
	if err != nil {
		// The keyfunc error (unsupported scheme) survives the jwt error chain.
		var de *domain.Error
		if errors.As(err, &de) {
			return "", de
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired()
		}
		return "", domain.ErrTokenMalformed()
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenMalformed()
	}
	return claims.Subject, nil
}

// Validate collapses every decode failure to false, logging the kind at
// warn level. Used on request ingress where a boolean gate is cheaper
// than bubbling a typed error.
func (c *TokenCodec) Validate(token string) bool {
	if _, err := c.DecodeSubject(token); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			c.log.Warn().Str("code", de.Code).Msg("token rejected")
		} else {
			c.log.Warn().Err(err).Msg("token rejected")
		}
		return false
	}
	return true
}
