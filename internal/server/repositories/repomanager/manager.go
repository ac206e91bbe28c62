package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a pool or an open
// transaction, so one unit of work can span several of them.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Challenges(db dbx.DBTX) challenges.Repository
	Memberships(db dbx.DBTX) memberships.Repository
}
