// Package repomanager vends repository implementations bound to a DBTX,
// so services can run the same repository against *sql.DB or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/repositories/accesstokens"
	"github.com/bandroomhq/bandroom/internal/server/repositories/charts"
	"github.com/bandroomhq/bandroom/internal/server/repositories/members"
	"github.com/bandroomhq/bandroom/internal/server/repositories/practicelogs"
	"github.com/bandroomhq/bandroom/internal/server/repositories/refreshtokens"
	"github.com/bandroomhq/bandroom/internal/server/repositories/songs"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Members(db dbx.DBTX) members.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Songs(db dbx.DBTX) songs.Repository
	Charts(db dbx.DBTX) charts.Repository
	AccessTokens(db dbx.DBTX) accesstokens.Repository
	PracticeLogs(db dbx.DBTX) practicelogs.Repository
}
