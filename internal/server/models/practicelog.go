package models

import "time"

// PracticeLog records one rehearsal of a song.
type PracticeLog struct {
	ID              string
	BandID          string
	SongID          string
	MemberID        string
	DurationMinutes int
	Notes           string
	PracticedAt     time.Time
}
