package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchUserReposTruncatesToTopFive(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": 1, "name": "one", "html_url": "https://github.com/alice/one", "language": "Go"},
			{"id": 2, "name": "two", "html_url": "https://github.com/alice/two"},
			{"id": 3, "name": "three", "html_url": "https://github.com/alice/three"},
			{"id": 4, "name": "four", "html_url": "https://github.com/alice/four"},
			{"id": 5, "name": "five", "html_url": "https://github.com/alice/five"},
			{"id": 6, "name": "six", "html_url": "https://github.com/alice/six"},
			{"id": 7, "name": "seven", "html_url": "https://github.com/alice/seven"}
		]`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.FetchUserRepos(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Equal(t, "/users/alice/repos", gotPath)
	assert.Len(t, records, 5)
	assert.Equal(t, int64(1), *records[0].ID)
	assert.Equal(t, int64(5), *records[4].ID)
	assert.Equal(t, "Go", *records[0].Language)
	assert.Nil(t, records[1].Language)
}

func TestFetchUserReposKeepsRecordWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name": "no-id", "html_url": "https://github.com/alice/no-id"}]`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.FetchUserRepos(context.Background(), "alice")

	// Filtering malformed records is the sync engine's job, not the
	// adapter's.
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Nil(t, records[0].ID)
}

func TestFetchUserReposNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchUserRepos(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFetchUserReposUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchUserRepos(context.Background(), "alice")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
}

func TestFetchUserReposUnexpectedPayload(t *testing.T) {
	for name, body := range map[string]string{
		"object":  `{"message": "rate limited"}`,
		"null":    `null`,
		"garbage": `[not json`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.FetchUserRepos(context.Background(), "alice")

			assert.ErrorIs(t, err, ErrUnexpectedPayload)
		})
	}
}

func TestFetchUserReposCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL)
	_, err := client.FetchUserRepos(ctx, "alice")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.True(t, errors.Is(err, context.Canceled))
}
