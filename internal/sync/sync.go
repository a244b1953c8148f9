// Package sync reconciles the local repository mirror of one user with
// the set most recently fetched from GitHub: upsert every fetched record,
// prune everything that fell out of the fetched set, all in one
// transaction.
package sync

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gh-mirror/internal/db"
	"gh-mirror/internal/github"
	"gh-mirror/internal/models"
)

const (
	StatusNew     = "new"
	StatusUpdated = "updated"
)

// Repo is the client-facing shape of one mirrored repository.
type Repo struct {
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
}

// Result is the committed outcome of one reconcile call.
type Result struct {
	Username     string `json:"username"`
	Status       string `json:"status"`
	IsNew        bool   `json:"is_new"`
	Repositories []Repo `json:"repositories"`
}

// Reconcile makes the stored repository set for username match records
// exactly. The user is created on first sight. Records without an ID are
// skipped. Everything commits atomically; on any store error nothing is
// applied.
func Reconcile(store *db.Store, username string, records []github.RepoRecord) (*Result, error) {
	tx, err := store.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync transaction: %w", err)
	}
	defer tx.Rollback()

	var user models.User
	isNew := false
	err = tx.Get(&user, "SELECT * FROM users WHERE username = $1", username)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.Get(&user, "INSERT INTO users (username) VALUES ($1) RETURNING *", username)
		if err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", username, err)
		}
		isNew = true
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	seen := make([]int64, 0, len(records))
	for _, record := range records {
		if record.ID == nil {
			// Malformed record from the API, skip it.
			continue
		}
		seen = append(seen, *record.ID)

		_, err = tx.Exec(`
			INSERT INTO repositories (user_id, github_id, name, html_url, description, language)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, github_id) DO UPDATE SET
				name = EXCLUDED.name,
				html_url = EXCLUDED.html_url,
				description = EXCLUDED.description,
				language = EXCLUDED.language,
				updated_at = NOW()
		`, user.ID, *record.ID, record.Name, record.HTMLURL, record.Description, record.Language)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert repository %d for user %s: %w", *record.ID, username, err)
		}
	}

	// Prune pass: everything not in the fetched set goes away, including
	// all rows when the fetched set is empty.
	if len(seen) > 0 {
		_, err = tx.Exec("DELETE FROM repositories WHERE user_id = $1 AND NOT (github_id = ANY($2))", user.ID, pq.Array(seen))
	} else {
		_, err = tx.Exec("DELETE FROM repositories WHERE user_id = $1", user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to prune repositories for user %s: %w", username, err)
	}

	_, err = tx.Exec("UPDATE users SET last_synced_at = NOW(), updated_at = NOW() WHERE id = $1", user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to touch last_synced_at for user %s: %w", username, err)
	}

	var repositories []models.Repository
	err = tx.Select(&repositories, `
		SELECT id, github_id, name, html_url, description, language, user_id, created_at, updated_at
		FROM repositories
		WHERE user_id = $1
		ORDER BY name COLLATE "C" ASC
	`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back repositories for user %s: %w", username, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync for user %s: %w", username, err)
	}

	status := StatusUpdated
	if isNew {
		status = StatusNew
	}

	result := &Result{
		Username:     user.Username,
		Status:       status,
		IsNew:        isNew,
		Repositories: make([]Repo, 0, len(repositories)),
	}
	for _, repo := range repositories {
		result.Repositories = append(result.Repositories, Repo{
			Name:        repo.Name,
			HTMLURL:     repo.HTMLURL,
			Description: repo.Description,
			Language:    repo.Language,
		})
	}
	return result, nil
}
