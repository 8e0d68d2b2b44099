package ratelimit

import (
	"strings"
)

// ExemptEndpoint identifies a route that is never rate limited.
type ExemptEndpoint struct {
	Path   string
	Method string
}

// Exempt reports whether the path and method match one of the configured
// exemptions.
func Exempt(path string, method string, exempt []ExemptEndpoint) bool {
	for _, e := range exempt {
		if e.Path == path && e.Method == method {
			return true
		}
	}
	return false
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/api/" matches "/api/evaluate").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	// No match found
	return nil
}
