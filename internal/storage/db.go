package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Keys under which the credential pair is persisted.
const (
	KeyToken    = "token"
	KeyUsername = "username"
)

// DB wraps the SQLite database holding persisted session values.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database and runs migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the value stored under key. The boolean is false when the
// key is absent.
func (d *DB) Get(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (d *DB) Set(key, value string) error {
	if _, err := d.db.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (d *DB) Delete(key string) error {
	if _, err := d.db.Exec(`DELETE FROM session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
