package feed

import (
	"fmt"
	"net/http"
	"os"

	"github.com/eduncan911/podcast"

	"gh-mirror/internal/models"
)

func getBaseURL(r *http.Request) string {
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		return baseURL
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if r.Header.Get("X-Forwarded-Proto") != "" {
			scheme = r.Header.Get("X-Forwarded-Proto")
		}
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GenerateRSS renders a user's mirrored repositories as an RSS 2.0 feed.
// Items link to the repository on GitHub; PubDate is the time the mirror
// row last changed.
func GenerateRSS(user *models.User, repositories []models.Repository, r *http.Request) (string, error) {
	baseURL := getBaseURL(r)

	p := podcast.New(
		fmt.Sprintf("%s's repositories", user.Username),
		fmt.Sprintf("%s/api/%s", baseURL, user.Username),
		fmt.Sprintf("Top GitHub repositories mirrored for %s.", user.Username),
		&user.CreatedAt, user.LastSyncedAt,
	)

	for i := range repositories {
		repo := &repositories[i]

		description := "No description."
		if repo.Description != nil && *repo.Description != "" {
			description = *repo.Description
		}
		if repo.Language != nil && *repo.Language != "" {
			description = fmt.Sprintf("%s (%s)", description, *repo.Language)
		}

		item := podcast.Item{
			Title:       repo.Name,
			Description: description,
			Link:        repo.HTMLURL,
			PubDate:     &repo.UpdatedAt,
		}
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}
