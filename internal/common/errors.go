// Package common defines shared constants and sentinel errors used across
// BandRoom components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session errors.
	ErrNoSession            = errors.New("no active session")
	ErrSessionRefreshFailed = errors.New("session refresh failed")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrBatchIssueFailed    = errors.New("batch token issue failed")

	// Storage path errors. Both are hard errors on the deletion path:
	// a path that does not parse or points at another band's tree must
	// abort the operation, never be guessed around.
	ErrMalformedPath = errors.New("malformed storage path")
	ErrCrossTenant   = errors.New("cross-tenant path access")
)
