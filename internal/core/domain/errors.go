package domain

import "errors"

// Validation errors, detected before any write.
var (
	ErrMissingParameter  = errors.New("missing required parameter(s)")
	ErrInvalidAge        = errors.New("age must be a positive integer")
	ErrInvalidVisibility = errors.New("invalid value for public")
	ErrInvalidEntryID    = errors.New("invalid diary entry id")
)

// Credential store errors.
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Token ledger errors. Callers outside the ledger only ever see
// ErrUnauthorized; the two ledger kinds are never told apart on the wire.
var (
	ErrInvalidTokenFormat     = errors.New("token is not a valid identifier")
	ErrTokenNotFoundOrExpired = errors.New("token not found or expired")
	ErrUnauthorized           = errors.New("invalid authentication token")
)

// ErrNotFoundOrForbidden merges "no such entry" and "not your entry".
var ErrNotFoundOrForbidden = errors.New("diary entry not found")
