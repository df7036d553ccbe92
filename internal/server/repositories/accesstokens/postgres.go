package accesstokens

import (
	"context"
	"fmt"
	"strings"

	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/models"
)

// PostgresRepository implements the token store over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts one file access token row.
func (r *PostgresRepository) Create(ctx context.Context, token *models.FileAccessToken) error {
	query := `
		INSERT INTO file_access_tokens (token, user_id, storage_path, band_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		token.Token, token.UserID, token.StoragePath, token.BandID, token.ExpiresAt); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// CreateBatch inserts all tokens with a single multi-row VALUES statement.
// One round-trip regardless of batch size; a page with N charts would
// otherwise cost N sequential inserts.
func (r *PostgresRepository) CreateBatch(ctx context.Context, tokens []*models.FileAccessToken) error {
	if len(tokens) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO file_access_tokens (token, user_id, storage_path, band_id, expires_at) VALUES `)

	args := make([]any, 0, len(tokens)*5)
	for i, t := range tokens {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, t.Token, t.UserID, t.StoragePath, t.BandID, t.ExpiresAt)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}
