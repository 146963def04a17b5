package db

import "time"

// StoredSession is a remembered login
type StoredSession struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"` // zero when the token carries no expiry
	CreatedAt time.Time `json:"created_at"`
}
