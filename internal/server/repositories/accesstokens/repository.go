// Package accesstokens declares the repository contract for the file
// access token store. The store is insert-only from this codebase:
// lookup and invalidation happen in the external serve-file endpoint,
// and expired rows are removed by external housekeeping.
package accesstokens

import (
	"context"

	"github.com/bandroomhq/bandroom/internal/server/models"
)

// Repository persists file access tokens.
type Repository interface {
	// Create inserts a single token row.
	Create(ctx context.Context, token *models.FileAccessToken) error

	// CreateBatch inserts all tokens in one multi-row statement. The
	// insert is atomic: either every row lands or none does.
	CreateBatch(ctx context.Context, tokens []*models.FileAccessToken) error
}
