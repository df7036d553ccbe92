package models

import "time"

// Member is a registered user. Band membership is modeled separately so
// a member can play in several bands.
type Member struct {
	ID           string
	Email        string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}

// Band is an isolated group whose files and data must never be visible
// to another group.
type Band struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
