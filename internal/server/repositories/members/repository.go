// Package members declares the repository contract for registered members
// and their band memberships.
package members

import (
	"context"

	"github.com/bandroomhq/bandroom/internal/server/models"
)

// Repository defines persistence operations for members.
type Repository interface {
	// Create inserts a new member. A duplicate email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, member *models.Member) (*models.Member, error)

	// GetByEmail looks a member up by email, common.ErrorNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.Member, error)

	// IsMemberOfBand reports whether the member belongs to the band.
	IsMemberOfBand(ctx context.Context, memberID, bandID string) (bool, error)
}
