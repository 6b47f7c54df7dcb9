package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (callers branch on this, never on Message)
// - Message: safe summary for clients
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

// Is reports whether err carries the given stable code.
func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

// ErrInvalidCredential rejects a malformed mailbox-linkage input (empty
// access or refresh token). The prior credential state is left untouched.
func ErrInvalidCredential(field string) *Error {
	return WithMeta(New(KindValidation, "invalid_credential", "mailbox tokens must be non-empty"), map[string]string{
		"field": field,
	})
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: login failures (unknown email, inactive account, wrong
// password) all collapse into this one error to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid email or password")
}

func ErrNoActiveSession() *Error {
	return New(KindAuth, "no_active_session", "no authenticated session")
}

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "no token provided")
}

// ErrTokenInvalid is the opaque rejection used at the request boundary,
// where the caller only gets an unauthenticated result.
func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

// Token decode failures. DecodeSubject callers branch on exactly these
// four codes.
func ErrTokenEmpty() *Error {
	return New(KindAuth, "token_empty", "token is empty")
}

func ErrTokenMalformed() *Error {
	return New(KindAuth, "token_malformed", "token is malformed")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

func ErrTokenUnsupported() *Error {
	return New(KindAuth, "token_unsupported", "token signing scheme is not supported")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrIdentityNotFound() *Error {
	return New(KindNotFound, "identity_not_found", "identity not found")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrDuplicateEmail() *Error {
	return New(KindConflict, "duplicate_email", "email already registered")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

// ErrStoreUnavailable signals an identity-store outage. It is the one
// failure callers may retry with backoff; after a failed write the
// in-memory record is in an unknown durable state and must be re-queried.
func ErrStoreUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "store_unavailable", "identity store unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
