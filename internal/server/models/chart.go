// Package models defines server-side data models persisted in the database.
package models

import "time"

// ChartType identifies the format of a chart attached to a song.
type ChartType string

const (
	ChartTypeText  ChartType = "TEXT"
	ChartTypeImage ChartType = "IMAGE"
	ChartTypePDF   ChartType = "PDF"
	ChartTypeGP    ChartType = "GP"
)

// NeedsAccessToken reports whether charts of this type are served from
// the object store and therefore need a file access token. TEXT charts
// carry their content inline and never touch storage.
func (t ChartType) NeedsAccessToken() bool {
	switch t {
	case ChartTypePDF, ChartTypeImage, ChartTypeGP:
		return true
	}
	return false
}

// Chart is a song-reference document: PDF, image, Guitar-Pro file, or
// inline plain text.
type Chart struct {
	ID     string
	SongID string
	BandID string
	Type   ChartType
	Title  string

	// Content holds inline text for TEXT charts; empty otherwise.
	Content string

	// StoragePath is the object-store key for file-backed charts;
	// empty for TEXT charts.
	StoragePath string

	// URL is the currently servable link for file-backed charts. It is
	// rewritten by each refresh pass and may go stale between passes.
	URL string

	CreatedAt time.Time
}
