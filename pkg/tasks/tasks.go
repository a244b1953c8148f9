package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeRefreshAllUsers = "users:refresh_all"
	TypeRefreshUser     = "user:refresh"
)

func NewRefreshAllUsersTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeRefreshAllUsers, nil), nil
}

type RefreshUserTaskPayload struct {
	Username string
}

func NewRefreshUserTask(username string) (*asynq.Task, error) {
	payload, err := json.Marshal(RefreshUserTaskPayload{Username: username})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRefreshUser, payload), nil
}
