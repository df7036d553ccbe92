package models

import "time"

// Song is one entry in a band's library.
type Song struct {
	ID        string
	BandID    string
	Title     string
	Artist    string
	TempoBPM  int
	SongKey   string
	CreatedAt time.Time
}
