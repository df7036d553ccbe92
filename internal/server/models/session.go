package models

import "time"

// Session is the caller's authenticated identity for one request. It is
// materialized from the bearer token on every call and never cached
// across calls: a session can expire, and the active band can change,
// between any two requests.
type Session struct {
	UserID string
	// BandID is the caller's active band (tenant) for this session.
	BandID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
