package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gh-mirror/internal/github"
	"gh-mirror/internal/sync"
)

// maxUsernameLength is GitHub's own limit on login names.
const maxUsernameLength = 39

// SyncUser fetches the user's repositories from GitHub and reconciles the
// local mirror with them, returning the committed state.
func (h *Handlers) SyncUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" || len(username) > maxUsernameLength {
		writeDetail(w, http.StatusBadRequest, "Invalid username.")
		return
	}

	records, err := h.github.FetchUserRepos(r.Context(), username)
	if err != nil {
		var upstreamErr *github.UpstreamError
		switch {
		case errors.Is(err, github.ErrUserNotFound):
			writeDetail(w, http.StatusNotFound, "GitHub user not found.")
		case errors.As(err, &upstreamErr):
			writeDetail(w, http.StatusBadGateway, fmt.Sprintf("Error querying GitHub: %d", upstreamErr.StatusCode))
		case errors.Is(err, github.ErrUnexpectedPayload):
			writeDetail(w, http.StatusBadGateway, "Unexpected response from GitHub API.")
		default:
			log.Printf("Error fetching repositories for %s: %v", username, err)
			writeDetail(w, http.StatusBadGateway, "Error querying GitHub.")
		}
		return
	}

	result, err := sync.Reconcile(h.store, username, records)
	if err != nil {
		log.Printf("Error reconciling user %s: %v", username, err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type userResponse struct {
	Username     string      `json:"username"`
	LastSyncedAt *time.Time  `json:"last_synced_at"`
	Repositories []sync.Repo `json:"repositories"`
}

// GetUser returns the stored mirror for a user without touching GitHub.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.store.GetUserByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		writeDetail(w, http.StatusNotFound, "User has not been synced.")
		return
	} else if err != nil {
		log.Printf("Error getting user %s: %v", username, err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	repositories, err := h.store.GetRepositoriesByUserID(user.ID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := userResponse{
		Username:     user.Username,
		LastSyncedAt: user.LastSyncedAt,
		Repositories: make([]sync.Repo, 0, len(repositories)),
	}
	for _, repo := range repositories {
		resp.Repositories = append(resp.Repositories, sync.Repo{
			Name:        repo.Name,
			HTMLURL:     repo.HTMLURL,
			Description: repo.Description,
			Language:    repo.Language,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
