package practicelogs

import (
	"context"
	"fmt"

	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

// PostgresRepository implements practice log persistence over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a practice log entry.
func (r *PostgresRepository) Create(ctx context.Context, log *models.PracticeLog) (*models.PracticeLog, error) {
	query := `
		INSERT INTO practice_logs (band_id, song_id, member_id, duration_minutes, notes, practiced_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	l := *log
	if err := r.db.QueryRowContext(ctx, query,
		log.BandID, log.SongID, log.MemberID, log.DurationMinutes, log.Notes, log.PracticedAt).
		Scan(&l.ID); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &l, nil
}

// SelectRecent returns the band's most recent logs, newest first.
func (r *PostgresRepository) SelectRecent(ctx context.Context, bandID string, limit int) ([]*models.PracticeLog, error) {
	query := `
		SELECT id, band_id, song_id, member_id, duration_minutes, notes, practiced_at
		FROM practice_logs
		WHERE band_id = $1
		ORDER BY practiced_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, bandID, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*models.PracticeLog
	for rows.Next() {
		l := &models.PracticeLog{}
		if err := rows.Scan(&l.ID, &l.BandID, &l.SongID, &l.MemberID, &l.DurationMinutes, &l.Notes, &l.PracticedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
