// Package migrations embeds the goose migrations of the local store, one
// directory per SQL dialect.
package migrations

import (
	"embed"
	"io/fs"

	"github.com/dmitrijs2005/gophinventory/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrations embed.FS

// For returns the migration files for the given dialect, rooted so that
// goose can read them from ".".
func For(d dbx.Dialect) (fs.FS, error) {
	dir := "sqlite"
	if d == dbx.DialectPostgres {
		dir = "postgres"
	}
	return fs.Sub(migrations, dir)
}
