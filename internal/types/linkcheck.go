// Package types provides type definitions for structured data used throughout the trust-evaluator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QualitySignals carries the per-platform quality observations collected by
// the link-reachability collaborator. Fields that do not apply to a platform
// stay at their zero value.
type QualitySignals struct {
	// GitHub signals.
	RepoCount      int  `json:"repo_count,omitempty"`
	RecentActivity bool `json:"recent_activity,omitempty"`
	HasBio         bool `json:"has_bio,omitempty"`

	// Portfolio signals, detected from fetched page content.
	HasProjectsSection bool `json:"has_projects_section,omitempty"`
	HasAboutSection    bool `json:"has_about_section,omitempty"`
	HasContactInfo     bool `json:"has_contact_info,omitempty"`
}

// LinkCheckResult is the outcome of checking a single profile URL. A nil
// *LinkCheckResult means the URL was not provided, which is distinct from
// "provided but malformed" (WellFormed=false).
type LinkCheckResult struct {
	URL        string         `json:"url"`
	WellFormed bool           `json:"well_formed"`
	Reachable  bool           `json:"reachable"`
	// CheckFailed is true when the reachability check itself errored
	// (network failure, timeout) rather than confirming the URL broken.
	// The two cases score identically but must be flagged with different
	// wording.
	CheckFailed bool           `json:"check_failed,omitempty"`
	Signals     QualitySignals `json:"signals"`
}
