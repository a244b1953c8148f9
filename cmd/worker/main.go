package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"gh-mirror/internal/db"
	"gh-mirror/internal/github"
	"gh-mirror/internal/worker"
	"gh-mirror/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	store, err := db.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			// One task at a time: the refresh job is a strictly
			// sequential loop and must not overlap with itself.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	ghClient := github.NewClient(os.Getenv("GITHUB_API_URL"))
	taskHandler := worker.NewTaskHandler(store, ghClient)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRefreshAllUsers, taskHandler.HandleRefreshAllUsersTask)
	mux.HandleFunc(tasks.TypeRefreshUser, taskHandler.HandleRefreshUserTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
