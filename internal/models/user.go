package models

import "time"

// User represents a GitHub user whose repositories are mirrored locally.
// LastSyncedAt is nil until the first successful sync commits.
type User struct {
	ID           int64      `db:"id"`
	Username     string     `db:"username"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	LastSyncedAt *time.Time `db:"last_synced_at"`
}
