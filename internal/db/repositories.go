package db

import (
	"log"

	"gh-mirror/internal/models"
)

// GetRepositoriesByUserID returns the user's mirrored repositories ordered
// by name ascending. The "C" collation keeps the order case-sensitive
// regardless of the database locale.
func (s *Store) GetRepositoriesByUserID(userID int64) ([]models.Repository, error) {
	query := `
		SELECT id, github_id, name, html_url, description, language, user_id, created_at, updated_at
		FROM repositories
		WHERE user_id = $1
		ORDER BY name COLLATE "C" ASC
	`
	var repositories []models.Repository
	err := s.db.Select(&repositories, query, userID)
	if err != nil {
		log.Printf("Error getting repositories for user %d: %v", userID, err)
		return nil, err
	}
	return repositories, nil
}
