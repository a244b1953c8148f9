package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // The database driver
)

// Store wraps the database connection pool. Every operation acquires its
// session from this handle; nothing in the package is process-global.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres and returns a ready Store.
func Open(databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	conn, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewStore(conn), nil
}

// NewStore wraps an existing connection. Used by Open and by tests that
// back the Store with a mock driver.
func NewStore(conn *sqlx.DB) *Store {
	return &Store{db: conn}
}

// Beginx starts a transaction on the pool.
func (s *Store) Beginx() (*sqlx.Tx, error) {
	return s.db.Beginx()
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             BIGSERIAL PRIMARY KEY,
	username       VARCHAR(39) NOT NULL UNIQUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_synced_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS repositories (
	id          BIGSERIAL PRIMARY KEY,
	github_id   BIGINT NOT NULL,
	name        TEXT NOT NULL,
	html_url    TEXT NOT NULL,
	description TEXT,
	language    TEXT,
	user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, github_id)
);
`

// Migrate creates the schema if it does not exist yet. Safe to run on
// every startup.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
