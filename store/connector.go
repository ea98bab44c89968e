package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const (
	pragmaJournalModeWAL = `PRAGMA journal_mode=WAL`
	pragmaForeignKeysOn  = `PRAGMA foreign_keys=ON`
	pragmaBusyTimeout    = `PRAGMA busy_timeout=5000`
)

// Connector opens a database handle for a connection string. Every store
// operation opens one handle and closes it before returning, so handles
// issued for the same connection string must be independent of each
// other.
type Connector interface {
	Open(connString string) (*sql.DB, error)
}

// SQLite is the default Connector, backed by the pure-Go sqlite driver.
type SQLite struct{}

func (SQLite) Open(connString string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", connString)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", connString, err)
	}

	pragmas := []string{pragmaJournalModeWAL, pragmaForeignKeysOn, pragmaBusyTimeout}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure sqlite %q: %w", stmt, err)
		}
	}
	return db, nil
}
