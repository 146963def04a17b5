package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// GetSetting returns a stored value, or def when the key is unset
func (db *DB) GetSetting(key, def string) (string, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean setting
func (db *DB) GetBool(key string, def bool) bool {
	value, err := db.GetSetting(key, strconv.FormatBool(def))
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}

// SetBool stores a boolean setting
func (db *DB) SetBool(key string, value bool) error {
	return db.SetSetting(key, strconv.FormatBool(value))
}
