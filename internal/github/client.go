package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is the public GitHub API endpoint.
const DefaultAPIURL = "https://api.github.com"

// maxReposPerSync caps how many repositories one sync considers. Only the
// first page's leading entries are mirrored.
const maxReposPerSync = 5

const requestTimeout = 10 * time.Second

// ErrUserNotFound means GitHub has no user with the requested username.
var ErrUserNotFound = errors.New("github user not found")

// ErrUnexpectedPayload means GitHub answered 2xx but the body was not a
// JSON array of repositories.
var ErrUnexpectedPayload = errors.New("unexpected response from github api")

// UpstreamError is any non-2xx, non-404 answer from GitHub.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("error querying github: status %d", e.StatusCode)
}

// RepoRecord is one repository as GitHub reports it. Every field is a
// pointer: the payload is decoded defensively and a record without an ID
// is filtered out later rather than trusted.
type RepoRecord struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	HTMLURL     *string `json:"html_url"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// FetchUserRepos makes a single request for the user's repositories and
// returns at most maxReposPerSync records. No retries.
func (c *Client) FetchUserRepos(ctx context.Context, username string) ([]RepoRecord, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read github response: %w", err)
	}

	// A 2xx body that is not a JSON array (an error object, null, etc.)
	// is an upstream contract violation, not a decode bug on our side.
	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		return nil, ErrUnexpectedPayload
	}

	var records []RepoRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, ErrUnexpectedPayload
	}

	if len(records) > maxReposPerSync {
		records = records[:maxReposPerSync]
	}
	return records, nil
}
