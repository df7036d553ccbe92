package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements member persistence over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a member. Unique-violation on email maps to
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	query := `
		INSERT INTO members (email, password_hash, salt)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	m := *member
	if err := r.db.QueryRowContext(ctx, query, member.Email, member.PasswordHash, member.Salt).
		Scan(&m.ID, &m.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &m, nil
}

// GetByEmail looks up a member by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	query := `
		SELECT id, email, password_hash, salt, created_at
		FROM members
		WHERE email = $1
	`
	m := &models.Member{}
	if err := r.db.QueryRowContext(ctx, query, email).
		Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Salt, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

// IsMemberOfBand reports whether the member belongs to the band.
func (r *PostgresRepository) IsMemberOfBand(ctx context.Context, memberID, bandID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM band_members
			WHERE member_id = $1 AND band_id = $2
		)
	`
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, memberID, bandID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}
