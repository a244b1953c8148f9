package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"gh-mirror/internal/db"
	"gh-mirror/internal/github"
	"gh-mirror/internal/handlers"
	"gh-mirror/internal/middleware"
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
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	templates, err := template.ParseGlob(filepath.Join("web", "templates", "*.html"))
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	ghClient := github.NewClient(os.Getenv("GITHUB_API_URL"))
	h := handlers.New(templates, store, ghClient, asynqClient)

	// One sync per second per client, small burst. This is our own inbound
	// limit, unrelated to GitHub's quotas.
	limiter := middleware.NewRateLimiterMiddleware(rate.Every(time.Second), 5)

	r := mux.NewRouter()
	r.HandleFunc("/", h.ServeIndex).Methods(http.MethodGet)
	r.Handle("/api/refresh", limiter.Middleware(http.HandlerFunc(h.TriggerRefresh))).Methods(http.MethodPost)
	r.Handle("/api/{username}", limiter.Middleware(http.HandlerFunc(h.SyncUser))).Methods(http.MethodPost)
	r.HandleFunc("/api/{username}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/api/{username}/feed", h.GetUserFeed).Methods(http.MethodGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on :%s (commit: %s)", port, CommitSHA)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
