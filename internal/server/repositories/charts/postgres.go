package charts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

// PostgresRepository implements chart persistence over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a chart and returns it with the generated ID and
// creation time filled in.
func (r *PostgresRepository) Create(ctx context.Context, chart *models.Chart) (*models.Chart, error) {
	query := `
		INSERT INTO charts (song_id, band_id, chart_type, title, content, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	c := *chart
	if err := r.db.QueryRowContext(ctx, query,
		chart.SongID, chart.BandID, chart.Type, chart.Title, chart.Content, chart.StoragePath).
		Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &c, nil
}

// SelectBySong returns a song's charts for the given band, oldest first.
func (r *PostgresRepository) SelectBySong(ctx context.Context, bandID, songID string) ([]*models.Chart, error) {
	query := `
		SELECT id, song_id, band_id, chart_type, title, content, storage_path, created_at
		FROM charts
		WHERE band_id = $1 AND song_id = $2
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, bandID, songID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*models.Chart
	for rows.Next() {
		c := &models.Chart{}
		if err := rows.Scan(&c.ID, &c.SongID, &c.BandID, &c.Type, &c.Title, &c.Content, &c.StoragePath, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}

// GetByID returns one chart scoped to the band. Absent rows (including
// rows owned by another band) yield common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, bandID, id string) (*models.Chart, error) {
	query := `
		SELECT id, song_id, band_id, chart_type, title, content, storage_path, created_at
		FROM charts
		WHERE band_id = $1 AND id = $2
	`
	c := &models.Chart{}
	if err := r.db.QueryRowContext(ctx, query, bandID, id).
		Scan(&c.ID, &c.SongID, &c.BandID, &c.Type, &c.Title, &c.Content, &c.StoragePath, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Delete removes a chart row scoped to the band.
func (r *PostgresRepository) Delete(ctx context.Context, bandID, id string) error {
	query := `
		DELETE FROM charts
		WHERE band_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query, bandID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
