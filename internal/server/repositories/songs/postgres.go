package songs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

// PostgresRepository implements song persistence over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a song and returns it with generated fields filled in.
func (r *PostgresRepository) Create(ctx context.Context, song *models.Song) (*models.Song, error) {
	query := `
		INSERT INTO songs (band_id, title, artist, tempo_bpm, song_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	s := *song
	if err := r.db.QueryRowContext(ctx, query,
		song.BandID, song.Title, song.Artist, song.TempoBPM, song.SongKey).
		Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &s, nil
}

// SelectByBand returns the band's library ordered by title.
func (r *PostgresRepository) SelectByBand(ctx context.Context, bandID string) ([]*models.Song, error) {
	query := `
		SELECT id, band_id, title, artist, tempo_bpm, song_key, created_at
		FROM songs
		WHERE band_id = $1
		ORDER BY title
	`
	rows, err := r.db.QueryContext(ctx, query, bandID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*models.Song
	for rows.Next() {
		s := &models.Song{}
		if err := rows.Scan(&s.ID, &s.BandID, &s.Title, &s.Artist, &s.TempoBPM, &s.SongKey, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}

// GetByID returns one song scoped to the band, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, bandID, id string) (*models.Song, error) {
	query := `
		SELECT id, band_id, title, artist, tempo_bpm, song_key, created_at
		FROM songs
		WHERE band_id = $1 AND id = $2
	`
	s := &models.Song{}
	if err := r.db.QueryRowContext(ctx, query, bandID, id).
		Scan(&s.ID, &s.BandID, &s.Title, &s.Artist, &s.TempoBPM, &s.SongKey, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
