package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/repositories/repomanager"
)

// SongService manages a band's song library.
type SongService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSongService constructs a SongService.
func NewSongService(db *sql.DB, m repomanager.RepositoryManager) *SongService {
	return &SongService{db: db, repomanager: m}
}

// CreateSongInput describes a new library entry.
type CreateSongInput struct {
	Title    string
	Artist   string
	TempoBPM int
	SongKey  string
}

// CreateSong adds a song to the session's band library.
func (s *SongService) CreateSong(ctx context.Context, session *models.Session, in CreateSongInput) (*models.Song, error) {
	repo := s.repomanager.Songs(s.db)
	created, err := repo.Create(ctx, &models.Song{
		BandID:   session.BandID,
		Title:    in.Title,
		Artist:   in.Artist,
		TempoBPM: in.TempoBPM,
		SongKey:  in.SongKey,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating song: %w", err)
	}
	return created, nil
}

// ListSongs returns the band's library.
func (s *SongService) ListSongs(ctx context.Context, session *models.Session) ([]*models.Song, error) {
	repo := s.repomanager.Songs(s.db)
	songs, err := repo.SelectByBand(ctx, session.BandID)
	if err != nil {
		return nil, fmt.Errorf("error listing songs: %w", err)
	}
	return songs, nil
}

// GetSong returns one song scoped to the session's band.
func (s *SongService) GetSong(ctx context.Context, session *models.Session, id string) (*models.Song, error) {
	repo := s.repomanager.Songs(s.db)
	song, err := repo.GetByID(ctx, session.BandID, id)
	if err != nil {
		return nil, err
	}
	return song, nil
}
