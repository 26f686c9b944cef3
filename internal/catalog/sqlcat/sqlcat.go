// Package sqlcat persists catalogue rows to a SQLite-backed object
// store, grounded on the teacher's internal/db package: a thin *sql.DB
// wrapper, a fixed set of startup PRAGMAs, and schema management via
// golang-migrate's sqlite+iofs drivers against an embedded migrations
// filesystem.
//
// Unlike the teacher's store, this package drops the schema-drift
// detection and baselining machinery (DetectSchemaVersion,
// CompareSchemas, BaselineAtVersion and friends): those exist in the
// teacher to reconcile long-lived production databases with an
// evolving multi-table schema, and sofind's catalogue is a single
// table with one migration, so MigrateUp run at startup is the whole
// of the lifecycle that is needed (see DESIGN.md).
package sqlcat

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DevMode switches migration loading from the embedded filesystem to
// the on-disk migrations directory, for hot-reloading during local
// development of new migrations.
var DevMode = false

func getMigrationsFS() (fs.FS, error) {
	if DevMode {
		return os.DirFS("internal/catalog/sqlcat/migrations"), nil
	}
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("sqlcat: failed to open embedded migrations: %w", err)
	}
	return sub, nil
}

// Store wraps a *sql.DB open against a SQLite catalogue database.
type Store struct {
	*sql.DB
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("sqlcat: failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Open opens (creating if necessary) a SQLite database at path,
// applies the standard PRAGMAs, and migrates its schema up to the
// latest version.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlcat: failed to open %q: %w", path, err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	store := &Store{db}
	migrations, err := getMigrationsFS()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := store.MigrateUp(migrations); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
