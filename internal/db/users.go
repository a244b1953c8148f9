package db

import (
	"log"

	"gh-mirror/internal/models"
)

func (s *Store) GetUserByUsername(username string) (models.User, error) {
	user := models.User{}
	err := s.db.Get(&user, "SELECT * FROM users WHERE username = $1", username)
	return user, err
}

// ListUsernames returns every mirrored username. The refresh job reads
// this snapshot before it touches the network.
func (s *Store) ListUsernames() ([]string, error) {
	var usernames []string
	err := s.db.Select(&usernames, "SELECT username FROM users ORDER BY username")
	if err != nil {
		log.Printf("Error listing usernames: %v", err)
		return nil, err
	}
	return usernames, nil
}

// DeleteUser removes a user and everything it owns. The child rows are
// deleted explicitly rather than left to the FK cascade, inside one
// transaction so the pair cannot be half-applied.
func (s *Store) DeleteUser(username string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM repositories WHERE user_id IN (SELECT id FROM users WHERE username = $1)", username); err != nil {
		log.Printf("Error deleting repositories for user %s: %v", username, err)
		return err
	}
	if _, err := tx.Exec("DELETE FROM users WHERE username = $1", username); err != nil {
		log.Printf("Error deleting user %s: %v", username, err)
		return err
	}

	return tx.Commit()
}
