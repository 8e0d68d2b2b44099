package linkcheck

import (
	"net/url"
	"regexp"
	"strings"
)

// Platform identifies which grammar and quality checks apply to a URL.
type Platform string

const (
	// PlatformGitHub expects a user profile URL.
	PlatformGitHub Platform = "github"
	// PlatformLinkedIn expects a public profile URL.
	PlatformLinkedIn Platform = "linkedin"
	// PlatformPortfolio accepts any http or https URL.
	PlatformPortfolio Platform = "portfolio"
)

var (
	githubProfilePattern   = regexp.MustCompile(`^https?://(www\.)?github\.com/[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?/?$`)
	linkedinProfilePattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[A-Za-z0-9._-]+/?(\?.*)?$`)
)

// WellFormed reports whether a URL matches the expected grammar for its
// platform. Portfolio URLs only need a scheme and a host.
func WellFormed(rawURL string, platform Platform) bool {
	switch platform {
	case PlatformGitHub:
		return githubProfilePattern.MatchString(rawURL)
	case PlatformLinkedIn:
		return linkedinProfilePattern.MatchString(rawURL)
	default:
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return false
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return false
		}
		return parsed.Host != ""
	}
}

// GitHubUsername extracts the username from a well-formed GitHub profile URL.
func GitHubUsername(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.Trim(parsed.Path, "/")
}
