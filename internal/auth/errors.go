package auth

import "errors"

// Authentication failure taxonomy. Credential and token errors are never
// retried; the HTTP boundary translates them to status codes.
var (
	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" with one message, so callers cannot tell which applied.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled is returned for any non-ACTIVE, non-BLOCKED status.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrAccountBlocked is distinct from disabled and maps to HTTP 423.
	ErrAccountBlocked = errors.New("account blocked")

	// ErrTokenMalformed means the token is structurally not a valid JWT.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignatureInvalid means the signature does not verify against
	// the process signing key.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")

	// ErrTokenExpired means the token is past its encoded expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked means the token was blacklisted before its natural
	// expiry (logout or refresh rotation).
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidToken covers wrong token kind or an unresolvable subject.
	ErrInvalidToken = errors.New("invalid token")
)
