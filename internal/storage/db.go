// Package storage opens the shared pipeline database. Each store package
// owns its tables and runs its own migrations against the returned handle.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// #region open
// Open opens a SQLite database with WAL and foreign keys enabled.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	return db, nil
}
// #endregion open
