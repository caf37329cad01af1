// Package repomanager vends repositories bound to a database handle, so
// services can run the same repositories against *sql.DB or inside a
// transaction, and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Addresses(db dbx.DBTX) addresses.Repository
}
