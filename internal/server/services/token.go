package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/repositories/repomanager"
	"github.com/bandroomhq/bandroom/internal/storagepath"
	"github.com/google/uuid"
)

// FileTokenTTL is the fixed lifetime of a file access token. Five minutes
// covers a page view with margin; anything longer widens the window in
// which a leaked URL stays usable.
const FileTokenTTL = 5 * time.Minute

// TokenService issues file access tokens. It requires a pre-validated
// session (run through the session guard by the caller) because a batch
// covering dozens of rows multiplies the cost of an auth failure
// discovered halfway through.
type TokenService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTokenService constructs a TokenService.
func NewTokenService(db *sql.DB, m repomanager.RepositoryManager) *TokenService {
	return &TokenService{db: db, repomanager: m}
}

// buildToken constructs one token record for path under the session's
// identity, enforcing the invariant that the token's band always equals
// the {bandId} segment of its own storage path. The check is defense in
// depth: this issuer supplies both values itself, but a caller-supplied
// path must never mint a token for another band.
func buildToken(session *models.Session, path string, expiresAt time.Time) (*models.FileAccessToken, error) {
	if err := storagepath.ValidateOwnership(path, session.BandID); err != nil {
		return nil, err
	}
	return &models.FileAccessToken{
		Token:       uuid.NewString(),
		UserID:      session.UserID,
		StoragePath: path,
		BandID:      session.BandID,
		ExpiresAt:   expiresAt,
	}, nil
}

// IssueOne creates and persists a single token for storagePath.
func (s *TokenService) IssueOne(ctx context.Context, session *models.Session, storagePath string) (*models.FileAccessToken, error) {
	token, err := buildToken(session, storagePath, time.Now().Add(FileTokenTTL))
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.AccessTokens(s.db)
	if err := repo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("error creating access token: %w", err)
	}
	return token, nil
}

// IssueBatch creates one token per distinct path and persists all of them
// in a single multi-row insert. One round-trip regardless of batch size.
//
// All-or-nothing: on any failure the returned map is nil and no token
// exists in the store. Callers must treat an empty result for a
// non-empty request as total failure, not as "nothing needed tokens".
func (s *TokenService) IssueBatch(ctx context.Context, session *models.Session, storagePaths []string) (map[string]*models.FileAccessToken, error) {
	if len(storagePaths) == 0 {
		return map[string]*models.FileAccessToken{}, nil
	}

	expiresAt := time.Now().Add(FileTokenTTL)

	issued := make(map[string]*models.FileAccessToken, len(storagePaths))
	batch := make([]*models.FileAccessToken, 0, len(storagePaths))
	for _, path := range storagePaths {
		if _, ok := issued[path]; ok {
			continue
		}
		token, err := buildToken(session, path, expiresAt)
		if err != nil {
			return nil, err
		}
		issued[path] = token
		batch = append(batch, token)
	}

	repo := s.repomanager.AccessTokens(s.db)
	if err := repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBatchIssueFailed, err)
	}
	return issued, nil
}
