package linkcheck

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// DefaultCacheTTL bounds how long a check result is reused. Link health
// changes slowly; repeated evaluations of the same candidate should not
// hammer the target sites.
const DefaultCacheTTL = 15 * time.Minute

// CachedChecker wraps a Checker with an in-memory TTL cache keyed by
// platform and URL. Failed checks are not cached so transient network
// problems clear on retry.
type CachedChecker struct {
	inner Checker
	cache *gocache.Cache
}

// NewCachedChecker creates a caching wrapper around inner.
func NewCachedChecker(inner Checker, ttl time.Duration) *CachedChecker {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedChecker{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Check returns a cached result when one is fresh, delegating otherwise.
func (c *CachedChecker) Check(ctx context.Context, rawURL string, platform Platform) *types.LinkCheckResult {
	key := string(platform) + "|" + rawURL
	if cached, found := c.cache.Get(key); found {
		result := cached.(types.LinkCheckResult)
		return &result
	}

	result := c.inner.Check(ctx, rawURL, platform)
	if result != nil && !result.CheckFailed {
		// Store a copy so callers cannot mutate the cached entry.
		c.cache.Set(key, *result, gocache.DefaultExpiration)
	}
	return result
}

// Flush drops all cached results.
func (c *CachedChecker) Flush() {
	c.cache.Flush()
}
