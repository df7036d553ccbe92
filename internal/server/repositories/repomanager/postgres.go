// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/migrations"
	"github.com/bandroomhq/bandroom/internal/server/repositories/accesstokens"
	"github.com/bandroomhq/bandroom/internal/server/repositories/charts"
	"github.com/bandroomhq/bandroom/internal/server/repositories/members"
	"github.com/bandroomhq/bandroom/internal/server/repositories/practicelogs"
	"github.com/bandroomhq/bandroom/internal/server/repositories/refreshtokens"
	"github.com/bandroomhq/bandroom/internal/server/repositories/songs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Members returns a members.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Members(db dbx.DBTX) members.Repository {
	return members.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Songs returns a songs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Songs(db dbx.DBTX) songs.Repository {
	return songs.NewPostgresRepository(db)
}

// Charts returns a charts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Charts(db dbx.DBTX) charts.Repository {
	return charts.NewPostgresRepository(db)
}

// AccessTokens returns an accesstokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) AccessTokens(db dbx.DBTX) accesstokens.Repository {
	return accesstokens.NewPostgresRepository(db)
}

// PracticeLogs returns a practicelogs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) PracticeLogs(db dbx.DBTX) practicelogs.Repository {
	return practicelogs.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
