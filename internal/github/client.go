package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/clintrovert/prdesc/pkg/types"
)

// Client wraps the GitHub pull request API
type Client struct {
	apiClient *github.Client
	logger    *zap.Logger
}

// NewClient creates a new GitHub client. An empty baseURL keeps the public API endpoint.
func NewClient(accessToken, baseURL string, logger *zap.Logger) (*Client, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: accessToken},
	)
	tc := oauth2.NewClient(ctx, ts)

	apiClient := github.NewClient(tc)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse github api url: %w", err)
		}
		apiClient.BaseURL = u
	}

	return &Client{
		apiClient: apiClient,
		logger:    logger,
	}, nil
}

// FetchDiff returns the unified diff of a pull request
func (c *Client) FetchDiff(ctx context.Context, ref types.PullRequestRef) (string, error) {
	diff, _, err := c.apiClient.PullRequests.GetRaw(ctx, ref.Owner, ref.Name, ref.Number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff for %s: %w", ref, describeError(err))
	}

	c.logger.Debug("fetched pull request diff",
		zap.String("pull_request", ref.String()),
		zap.Int("bytes", len(diff)),
	)

	return diff, nil
}

// GetBody reads the current description of a pull request
func (c *Client) GetBody(ctx context.Context, ref types.PullRequestRef) (string, error) {
	pr, _, err := c.apiClient.PullRequests.Get(ctx, ref.Owner, ref.Name, ref.Number)
	if err != nil {
		return "", fmt.Errorf("failed to get pull request %s: %w", ref, describeError(err))
	}

	return pr.GetBody(), nil
}

// UpdateBody replaces the description of a pull request
func (c *Client) UpdateBody(ctx context.Context, ref types.PullRequestRef, body string) error {
	_, _, err := c.apiClient.PullRequests.Edit(ctx, ref.Owner, ref.Name, ref.Number, &github.PullRequest{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to update pull request %s: %w", ref, describeError(err))
	}

	c.logger.Info("updated pull request description",
		zap.String("pull_request", ref.String()),
		zap.Int("body_length", len(body)),
	)

	return nil
}
