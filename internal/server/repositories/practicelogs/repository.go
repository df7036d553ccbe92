// Package practicelogs declares the repository contract for rehearsal logs.
package practicelogs

import (
	"context"

	"github.com/bandroomhq/bandroom/internal/server/models"
)

// Repository defines persistence operations for practice logs.
type Repository interface {
	Create(ctx context.Context, log *models.PracticeLog) (*models.PracticeLog, error)

	// SelectRecent returns up to limit of the band's most recent logs,
	// newest first.
	SelectRecent(ctx context.Context, bandID string, limit int) ([]*models.PracticeLog, error)
}
