package models

import "time"

// RefreshToken is a server-stored rotating credential backing a member's
// long-lived login.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
