// Package charts declares the repository contract for chart records.
package charts

import (
	"context"

	"github.com/bandroomhq/bandroom/internal/server/models"
)

// Repository defines persistence operations for charts.
type Repository interface {
	// Create inserts a chart and returns it with its generated ID.
	Create(ctx context.Context, chart *models.Chart) (*models.Chart, error)

	// SelectBySong returns all charts of a song belonging to bandID,
	// oldest first.
	SelectBySong(ctx context.Context, bandID, songID string) ([]*models.Chart, error)

	// GetByID returns one chart scoped to bandID. Implementations
	// should return a not-found error when the chart is absent or
	// belongs to another band.
	GetByID(ctx context.Context, bandID, id string) (*models.Chart, error)

	// Delete removes a chart row scoped to bandID.
	Delete(ctx context.Context, bandID, id string) error
}
