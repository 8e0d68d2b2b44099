package linkcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/trust-evaluator/internal/types"
)

type githubUser struct {
	PublicRepos int    `json:"public_repos"`
	Bio         string `json:"bio"`
}

type githubRepo struct {
	PushedAt time.Time `json:"pushed_at"`
}

// githubSignals collects quality signals from the public GitHub API. The API
// is rate limited for unauthenticated clients, so any failure degrades to
// zero-valued signals instead of failing the whole check.
func (c *HTTPChecker) githubSignals(ctx context.Context, profileURL string) types.QualitySignals {
	username := GitHubUsername(profileURL)
	if username == "" {
		return types.QualitySignals{}
	}

	var signals types.QualitySignals

	var user githubUser
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.options.GitHubAPIBase, username), &user); err != nil {
		return signals
	}
	signals.RepoCount = user.PublicRepos
	signals.HasBio = strings.TrimSpace(user.Bio) != ""

	// The most recently pushed repo is enough to decide recent activity.
	var repos []githubRepo
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=1", c.options.GitHubAPIBase, username), &repos); err != nil {
		return signals
	}
	if len(repos) > 0 {
		cutoff := time.Now().Add(-c.options.ActivityWindow)
		signals.RecentActivity = repos[0].PushedAt.After(cutoff)
	}

	return signals
}

func (c *HTTPChecker) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{URL: rawURL, Message: "failed to decode response", Cause: err}
	}
	return nil
}
