package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"gh-mirror/internal/feed"
)

// GetUserFeed serves the user's mirrored repositories as an RSS feed.
func (h *Handlers) GetUserFeed(w http.ResponseWriter, r *http.Request) {
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

	rss, err := feed.GenerateRSS(&user, repositories, r)
	if err != nil {
		log.Printf("Error generating RSS for %s: %v", username, err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
