// Package config provides configuration loading and validation for the trust evaluation service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// LevelRange bounds the evidence expected for one claimed experience level.
type LevelRange struct {
	MinYears    float64 `json:"min_years"`
	MaxYears    float64 `json:"max_years"`
	MinProjects int     `json:"min_projects"`
	MaxProjects int     `json:"max_projects"`
}

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values fall back to defaults.
type Config struct {
	// Server
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Request bounds
	MaxResumeLength int `json:"max_resume_length,omitempty"` // Maximum resume text length in characters

	// Link checking
	LinkTimeoutSeconds   int  `json:"link_timeout_seconds,omitempty"`   // Per-URL reachability timeout
	LinkCacheTTLMinutes  int  `json:"link_cache_ttl_minutes,omitempty"` // TTL for cached link-check results
	GitHubMinRepos       int  `json:"github_min_repos,omitempty"`       // Repo count above which the repo bonus applies
	GitHubActivityMonths int  `json:"github_activity_months,omitempty"` // Window for the recent-activity bonus
	UseBrowser           bool `json:"use_browser,omitempty"`            // Use headless browser for SPA portfolio sites

	// Scoring policy
	LowRiskThreshold    float64 `json:"low_risk_threshold,omitempty"`    // Final score at or above this is low risk
	MediumRiskThreshold float64 `json:"medium_risk_threshold,omitempty"` // Final score at or above this is medium risk

	// Experience level ranges, keyed by level name
	LevelRanges map[types.ExperienceLevel]LevelRange `json:"level_ranges,omitempty"`

	// Model collaborators
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key for the embedding collaborator
	InferenceURL string `json:"inference_url,omitempty"` // Base URL of the sequence-model inference service
	EmbeddingDim int    `json:"embedding_dim,omitempty"` // Expected embedding vector dimensionality

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// DefaultConfig returns the configuration used when no file or overrides are
// provided. The scoring thresholds and level ranges here are the documented
// policy values; changing them changes every evaluation.
func DefaultConfig() Config {
	return Config{
		Host:                 "0.0.0.0",
		Port:                 8080,
		MaxResumeLength:      50000,
		LinkTimeoutSeconds:   10,
		LinkCacheTTLMinutes:  15,
		GitHubMinRepos:       3,
		GitHubActivityMonths: 6,
		LowRiskThreshold:     80,
		MediumRiskThreshold:  55,
		LevelRanges:          DefaultLevelRanges(),
		EmbeddingDim:         768,
	}
}

// DefaultLevelRanges returns the evidence ranges for each experience level.
func DefaultLevelRanges() map[types.ExperienceLevel]LevelRange {
	return map[types.ExperienceLevel]LevelRange{
		types.LevelEntry:  {MinYears: 0, MaxYears: 2, MinProjects: 1, MaxProjects: 4},
		types.LevelMid:    {MinYears: 2, MaxYears: 5, MinProjects: 4, MaxProjects: 15},
		types.LevelSenior: {MinYears: 5, MaxYears: 10, MinProjects: 10, MaxProjects: 30},
		types.LevelExpert: {MinYears: 8, MaxYears: 50, MinProjects: 20, MaxProjects: 50},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535], got %d", c.Port)
	}
	if c.MaxResumeLength < 0 {
		return fmt.Errorf("config error: 'max_resume_length' must be non-negative")
	}
	if c.LinkTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'link_timeout_seconds' must be non-negative")
	}
	if c.GitHubMinRepos < 0 {
		return fmt.Errorf("config error: 'github_min_repos' must be non-negative")
	}
	if c.MediumRiskThreshold > c.LowRiskThreshold {
		return fmt.Errorf("config error: 'medium_risk_threshold' (%.1f) must not exceed 'low_risk_threshold' (%.1f)",
			c.MediumRiskThreshold, c.LowRiskThreshold)
	}
	for level, r := range c.LevelRanges {
		if r.MinYears > r.MaxYears {
			return fmt.Errorf("config error: level %q has min_years > max_years", level)
		}
		if r.MinProjects > r.MaxProjects {
			return fmt.Errorf("config error: level %q has min_projects > max_projects", level)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags are applied after merging, so flags always win.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxResumeLength == 0 {
		result.MaxResumeLength = defaults.MaxResumeLength
	}
	if result.LinkTimeoutSeconds == 0 {
		result.LinkTimeoutSeconds = defaults.LinkTimeoutSeconds
	}
	if result.LinkCacheTTLMinutes == 0 {
		result.LinkCacheTTLMinutes = defaults.LinkCacheTTLMinutes
	}
	if result.GitHubMinRepos == 0 {
		result.GitHubMinRepos = defaults.GitHubMinRepos
	}
	if result.GitHubActivityMonths == 0 {
		result.GitHubActivityMonths = defaults.GitHubActivityMonths
	}
	if result.LowRiskThreshold == 0 {
		result.LowRiskThreshold = defaults.LowRiskThreshold
	}
	if result.MediumRiskThreshold == 0 {
		result.MediumRiskThreshold = defaults.MediumRiskThreshold
	}
	if result.LevelRanges == nil {
		result.LevelRanges = defaults.LevelRanges
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.InferenceURL == "" {
		result.InferenceURL = defaults.InferenceURL
	}
	if result.EmbeddingDim == 0 {
		result.EmbeddingDim = defaults.EmbeddingDim
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
