package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"gh-mirror/internal/db"
	"gh-mirror/internal/github"
	"gh-mirror/internal/sync"
	"gh-mirror/pkg/tasks"
)

type TaskHandler struct {
	store  *db.Store
	github github.RepoFetcher
}

func NewTaskHandler(store *db.Store, fetcher github.RepoFetcher) *TaskHandler {
	return &TaskHandler{store: store, github: fetcher}
}

// HandleRefreshAllUsersTask re-syncs every mirrored user, one at a time.
// The username snapshot is read before any network call. Each username is
// an independent unit of work: a failure is logged and the loop moves on,
// whether it came from GitHub or from the store.
func (h *TaskHandler) HandleRefreshAllUsersTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Refreshing all mirrored users...")

	usernames, err := h.store.ListUsernames()
	if err != nil {
		return fmt.Errorf("failed to list usernames: %w", err)
	}

	for _, username := range usernames {
		if err := h.refreshUser(ctx, username); err != nil {
			log.Printf("Error refreshing user %s: %v", username, err)
			continue
		}
	}

	log.Println("Finished refreshing all mirrored users.")
	return nil
}

// HandleRefreshUserTask re-syncs a single user on demand.
func (h *TaskHandler) HandleRefreshUserTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.RefreshUserTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log.Printf("Refreshing user: %s", p.Username)
	return h.refreshUser(ctx, p.Username)
}

func (h *TaskHandler) refreshUser(ctx context.Context, username string) error {
	records, err := h.github.FetchUserRepos(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}

	if _, err := sync.Reconcile(h.store, username, records); err != nil {
		return fmt.Errorf("failed to reconcile repositories: %w", err)
	}
	return nil
}
