package models

import "time"

// FileAccessToken is a one-time capability grant for a single object-store
// key. It is created at refresh or upload time, consumed by the external
// serve-file endpoint, and cleaned up by expiry only; this codebase never
// reads or deletes issued tokens.
type FileAccessToken struct {
	// Token is an opaque 128-bit random value in UUID form.
	Token string
	// UserID is the identity the token was issued to.
	UserID string
	// StoragePath is the exact key the token authorizes.
	StoragePath string
	// BandID is the tenant owning the object. It always equals the
	// {bandId} segment of StoragePath; the issuer refuses to build a
	// token otherwise.
	BandID string
	// ExpiresAt is issuance time plus the fixed token TTL.
	ExpiresAt time.Time
}
