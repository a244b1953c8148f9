package models

import "time"

// Repository is a local mirror of one GitHub repository.
// GithubID is GitHub's immutable identifier; (UserID, GithubID) is unique.
type Repository struct {
	ID          int64     `db:"id"`
	GithubID    int64     `db:"github_id"`
	Name        string    `db:"name"`
	HTMLURL     string    `db:"html_url"`
	Description *string   `db:"description"`
	Language    *string   `db:"language"`
	UserID      int64     `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
