// Package songs declares the repository contract for a band's song library.
package songs

import (
	"context"

	"github.com/bandroomhq/bandroom/internal/server/models"
)

// Repository defines persistence operations for songs.
type Repository interface {
	Create(ctx context.Context, song *models.Song) (*models.Song, error)
	SelectByBand(ctx context.Context, bandID string) ([]*models.Song, error)
	GetByID(ctx context.Context, bandID, id string) (*models.Song, error)
}
