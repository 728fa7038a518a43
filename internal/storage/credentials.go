package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrPartialCredentials is returned when only one of token and username is
// stored.
var ErrPartialCredentials = errors.New("storage: partial credentials")

// LoadCredentials returns the persisted token and username. Both are empty
// when nothing is stored.
func (d *DB) LoadCredentials() (token, username string, err error) {
	rows, err := d.db.Query(`SELECT key, value FROM session WHERE key IN (?, ?)`, KeyToken, KeyUsername)
	if err != nil {
		return "", "", fmt.Errorf("reading credentials: %w", err)
	}
	defer rows.Close()

	var haveToken, haveUsername bool
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return "", "", fmt.Errorf("scanning credentials: %w", err)
		}
		switch key {
		case KeyToken:
			token, haveToken = value, true
		case KeyUsername:
			username, haveUsername = value, true
		}
	}
	if err := rows.Err(); err != nil {
		return "", "", fmt.Errorf("reading credentials: %w", err)
	}

	if haveToken != haveUsername {
		return "", "", ErrPartialCredentials
	}
	return token, username, nil
}

// SaveCredentials writes token and username together.
func (d *DB) SaveCredentials(token, username string) error {
	return d.inTx(func(tx *sql.Tx) error {
		for _, kv := range [][2]string{{KeyToken, token}, {KeyUsername, username}} {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
				return fmt.Errorf("writing %q: %w", kv[0], err)
			}
		}
		return nil
	})
}

// ClearCredentials removes token and username together. If the
// transaction fails the keys are deleted one at a time, token first, so a
// leftover username alone is never restored.
func (d *DB) ClearCredentials() error {
	err := d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM session WHERE key IN (?, ?)`, KeyToken, KeyUsername); err != nil {
			return fmt.Errorf("deleting credentials: %w", err)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	for _, key := range []string{KeyToken, KeyUsername} {
		if derr := d.Delete(key); derr != nil {
			return errors.Join(err, derr)
		}
	}
	return nil
}

func (d *DB) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
