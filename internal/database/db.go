// Package database provides database connection management.
package database

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/vocanews/vocanews/internal/config"
	"github.com/vocanews/vocanews/schemas"
)

// Open opens the SQLite database file and applies embedded migrations.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", cfg.Path+"?_time_format=sqlite&_pragma=busy_timeout(15000)")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate() > %w", err)
	}

	return db, nil
}

func migrate(db *sqlx.DB) error {
	entries, err := fs.ReadDir(schemas.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("fs.ReadDir(migrations) > %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(schemas.Migrations, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("db.Exec(%s) > %w", name, err)
		}
	}
	return nil
}
