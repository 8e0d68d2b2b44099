// Package linkcheck verifies profile and portfolio URLs: well-formedness,
// reachability, and the quality signals the validation component scores.
package linkcheck

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; TrustEvaluator/1.0)"

// linkedinBotProtectionStatus is the non-standard status LinkedIn serves to
// automated clients. The profile exists; the page just will not render for
// bots, so it counts as reachable.
const linkedinBotProtectionStatus = 999

// Checker verifies a single URL for a given platform. Implementations must
// not return a nil result: failures are encoded in the result's CheckFailed
// and Reachable fields so scoring can word them differently.
type Checker interface {
	Check(ctx context.Context, rawURL string, platform Platform) *types.LinkCheckResult
}

// Options configures HTTP checking behavior.
type Options struct {
	Timeout        time.Duration
	UserAgent      string
	GitHubAPIBase  string // overridable for tests
	ActivityWindow time.Duration
	UseBrowser     bool
}

// DefaultOptions returns sensible defaults for checking.
func DefaultOptions() *Options {
	return &Options{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		GitHubAPIBase:  "https://api.github.com",
		ActivityWindow: 6 * 30 * 24 * time.Hour,
	}
}

// HTTPChecker verifies URLs over plain HTTP, enriching GitHub results via the
// public API and portfolio results via page analysis.
type HTTPChecker struct {
	client  *http.Client
	options *Options
}

// NewHTTPChecker creates a checker with the given options.
func NewHTTPChecker(opts *Options) *HTTPChecker {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.GitHubAPIBase == "" {
		opts.GitHubAPIBase = "https://api.github.com"
	}
	return &HTTPChecker{
		client:  &http.Client{Timeout: opts.Timeout},
		options: opts,
	}
}

// Check verifies a URL. Malformed URLs short-circuit without any network
// traffic. Network failures mark the result CheckFailed rather than
// confirmed unreachable.
func (c *HTTPChecker) Check(ctx context.Context, rawURL string, platform Platform) *types.LinkCheckResult {
	result := &types.LinkCheckResult{URL: rawURL}

	if !WellFormed(rawURL, platform) {
		return result
	}
	result.WellFormed = true

	status, body, err := c.get(ctx, rawURL)
	if err != nil {
		result.CheckFailed = true
		return result
	}
	result.Reachable = statusReachable(status, platform)
	if !result.Reachable {
		return result
	}

	switch platform {
	case PlatformGitHub:
		// Profile page reachability and quality signals come from different
		// endpoints; an API failure degrades the signals, not the result.
		result.Signals = c.githubSignals(ctx, rawURL)
	case PlatformPortfolio:
		if c.options.UseBrowser && ShouldUseBrowser(body) {
			if rendered, err := renderWithBrowser(ctx, rawURL, c.options.Timeout); err == nil {
				body = rendered
			}
		}
		result.Signals = analyzePortfolioPage(body)
	}

	return result
}

func (c *HTTPChecker) get(ctx context.Context, rawURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.options.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	return resp.StatusCode, string(body), nil
}

func statusReachable(status int, platform Platform) bool {
	if platform == PlatformLinkedIn && status == linkedinBotProtectionStatus {
		return true
	}
	return status >= 200 && status < 400
}

// NormalizeURL trims whitespace and adds an https scheme when the value looks
// like a bare domain. Resumes frequently list links without a scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}
