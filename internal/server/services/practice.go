package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/repositories/repomanager"
)

// PracticeService records and lists rehearsal log entries.
type PracticeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPracticeService constructs a PracticeService.
func NewPracticeService(db *sql.DB, m repomanager.RepositoryManager) *PracticeService {
	return &PracticeService{db: db, repomanager: m}
}

// LogPracticeInput describes one rehearsal of a song.
type LogPracticeInput struct {
	SongID          string
	DurationMinutes int
	Notes           string
	PracticedAt     time.Time
}

// LogPractice records a rehearsal under the session's band and member.
func (s *PracticeService) LogPractice(ctx context.Context, session *models.Session, in LogPracticeInput) (*models.PracticeLog, error) {
	practicedAt := in.PracticedAt
	if practicedAt.IsZero() {
		practicedAt = time.Now()
	}

	repo := s.repomanager.PracticeLogs(s.db)
	created, err := repo.Create(ctx, &models.PracticeLog{
		BandID:          session.BandID,
		SongID:          in.SongID,
		MemberID:        session.UserID,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
		PracticedAt:     practicedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating practice log: %w", err)
	}
	return created, nil
}

const defaultRecentLimit = 50

// RecentLogs returns the band's most recent rehearsals, newest first.
func (s *PracticeService) RecentLogs(ctx context.Context, session *models.Session, limit int) ([]*models.PracticeLog, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	repo := s.repomanager.PracticeLogs(s.db)
	logs, err := repo.SelectRecent(ctx, session.BandID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing practice logs: %w", err)
	}
	return logs, nil
}
