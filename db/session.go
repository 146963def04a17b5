package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveSession replaces the remembered session
func (db *DB) SaveSession(s StoredSession) error {
	var expires interface{}
	if !s.ExpiresAt.IsZero() {
		expires = s.ExpiresAt.UTC()
	}
	_, err := db.conn.Exec(
		`INSERT INTO sessions (id, token, email, expires_at, created_at) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token, email = excluded.email,
		 expires_at = excluded.expires_at, created_at = excluded.created_at`,
		s.Token, s.Email, expires, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the remembered session, or nil when there is none
func (db *DB) LoadSession() (*StoredSession, error) {
	var s StoredSession
	var expires sql.NullTime
	err := db.conn.QueryRow(
		"SELECT token, email, expires_at, created_at FROM sessions WHERE id = 1",
	).Scan(&s.Token, &s.Email, &expires, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if expires.Valid {
		s.ExpiresAt = expires.Time
	}

	return &s, nil
}

// ClearSession forgets the remembered session
func (db *DB) ClearSession() error {
	if _, err := db.conn.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
