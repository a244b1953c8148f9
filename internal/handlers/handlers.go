package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"gh-mirror/internal/db"
	"gh-mirror/internal/github"
	"gh-mirror/pkg/tasks"
)

type Handlers struct {
	templates   *template.Template
	store       *db.Store
	github      github.RepoFetcher
	asynqClient tasks.TaskEnqueuer
}

func New(templates *template.Template, store *db.Store, fetcher github.RepoFetcher, asynqClient tasks.TaskEnqueuer) *Handlers {
	return &Handlers{
		templates:   templates,
		store:       store,
		github:      fetcher,
		asynqClient: asynqClient,
	}
}

func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	err := h.templates.ExecuteTemplate(w, "index.html", nil)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeDetail writes an error body in the {"detail": "..."} shape so
// clients can parse every failure the same way.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
