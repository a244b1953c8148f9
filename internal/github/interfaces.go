package github

import "context"

// RepoFetcher defines the interface for fetching a user's repositories.
// It's implemented by Client, and can be mocked for testing.
type RepoFetcher interface {
	FetchUserRepos(ctx context.Context, username string) ([]RepoRecord, error)
}
