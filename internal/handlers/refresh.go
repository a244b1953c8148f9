package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/hibiken/asynq"

	"gh-mirror/pkg/tasks"
)

type refreshRequest struct {
	Username string `json:"username"`
}

// TriggerRefresh enqueues a background refresh: of a single user when the
// body names one, of every mirrored user otherwise. The work itself runs
// on the worker, so the reply is 202.
func (h *Handlers) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// An empty body means refresh everything.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var task *asynq.Task
	var err error
	if req.Username != "" {
		task, err = tasks.NewRefreshUserTask(req.Username)
	} else {
		task, err = tasks.NewRefreshAllUsersTask()
	}
	if err == nil {
		_, err = h.asynqClient.Enqueue(task)
	}
	if err != nil {
		log.Printf("Error enqueuing refresh task: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to enqueue refresh.")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}
