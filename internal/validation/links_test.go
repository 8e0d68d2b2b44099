package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/types"
)

func newTestValidator() *Validator {
	cfg := config.DefaultConfig()
	return NewValidator(&cfg)
}

func goodGitHub() *types.LinkCheckResult {
	return &types.LinkCheckResult{
		URL:        "https://github.com/someone",
		WellFormed: true,
		Reachable:  true,
		Signals: types.QualitySignals{
			RepoCount:      12,
			RecentActivity: true,
			HasBio:         true,
		},
	}
}

func goodLinkedIn() *types.LinkCheckResult {
	return &types.LinkCheckResult{
		URL:        "https://www.linkedin.com/in/someone",
		WellFormed: true,
		Reachable:  true,
	}
}

func goodPortfolio() *types.LinkCheckResult {
	return &types.LinkCheckResult{
		URL:        "https://someone.dev",
		WellFormed: true,
		Reachable:  true,
		Signals: types.QualitySignals{
			HasProjectsSection: true,
			HasAboutSection:    true,
			HasContactInfo:     true,
		},
	}
}

func seniorFeatures() types.ResumeFeatures {
	return types.ResumeFeatures{
		ProjectCount:         18,
		TotalExperienceYears: 7.0,
	}
}

func flagCategories(flags []types.Flag) []string {
	var categories []string
	for _, f := range flags {
		categories = append(categories, f.Category)
	}
	return categories
}

func findFlag(t *testing.T, flags []types.Flag, category string) types.Flag {
	t.Helper()
	for _, f := range flags {
		if f.Category == category {
			return f
		}
	}
	require.Failf(t, "flag not found", "no flag with category %q in %v", category, flagCategories(flags))
	return types.Flag{}
}

func TestScoreFullCredit(t *testing.T) {
	v := newTestValidator()
	score := v.Score(goodGitHub(), goodLinkedIn(), goodPortfolio(), types.LevelSenior, seniorFeatures())

	assert.Equal(t, 30.0, score.Points)
	assert.Equal(t, types.ValidationMaxPoints, score.MaxPoints)
	// The limited-verification notice is always present for LinkedIn.
	require.Len(t, score.Flags, 1)
	assert.Equal(t, types.SeverityInfo, score.Flags[0].Severity)
	assert.Equal(t, "linkedin-limited-verification", score.Flags[0].Category)
}

func TestScoreGitHubMissing(t *testing.T) {
	v := newTestValidator()
	points, flags := v.scoreGitHub(nil)

	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, types.SeverityHigh, flags[0].Severity)
	assert.Equal(t, "GitHub URL not provided", flags[0].Message)
}

func TestScoreGitHubInvalidFormat(t *testing.T) {
	v := newTestValidator()
	points, flags := v.scoreGitHub(&types.LinkCheckResult{URL: "not a url"})

	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, types.SeverityHigh, flags[0].Severity)
	assert.Contains(t, flags[0].Message, "not a url")
}

func TestScoreGitHubUnreachableVsCheckFailed(t *testing.T) {
	v := newTestValidator()

	unreachable := &types.LinkCheckResult{URL: "https://github.com/x", WellFormed: true}
	points, flags := v.scoreGitHub(unreachable)
	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, "github-not-accessible", flags[0].Category)

	failed := &types.LinkCheckResult{URL: "https://github.com/x", WellFormed: true, CheckFailed: true}
	points, flags = v.scoreGitHub(failed)
	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, "github-check-failed", flags[0].Category)
	assert.NotEqual(t, "github-not-accessible", flags[0].Category)
}

func TestScoreGitHubPartialSignals(t *testing.T) {
	tests := []struct {
		name       string
		signals    types.QualitySignals
		wantPoints float64
		wantFlags  []string
	}{
		{
			name:       "reachable only",
			signals:    types.QualitySignals{},
			wantPoints: 4.0,
			wantFlags:  []string{"github-low-repos", "github-no-activity", "github-no-bio"},
		},
		{
			name:       "repos at minimum do not earn credit",
			signals:    types.QualitySignals{RepoCount: 3, RecentActivity: true, HasBio: true},
			wantPoints: 7.0,
			wantFlags:  []string{"github-low-repos"},
		},
		{
			name:       "missing bio only",
			signals:    types.QualitySignals{RepoCount: 10, RecentActivity: true},
			wantPoints: 9.0,
			wantFlags:  []string{"github-no-bio"},
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := goodGitHub()
			result.Signals = tt.signals
			points, flags := v.scoreGitHub(result)
			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantFlags, flagCategories(flags))
		})
	}
}

func TestScoreLinkedInAdditiveSplit(t *testing.T) {
	v := newTestValidator()

	points, flags := v.scoreLinkedIn(goodLinkedIn())
	assert.Equal(t, 10.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, "linkedin-limited-verification", flags[0].Category)

	// Well-formed but unreachable still earns the format portion.
	unreachable := &types.LinkCheckResult{URL: "https://www.linkedin.com/in/x", WellFormed: true}
	points, flags = v.scoreLinkedIn(unreachable)
	assert.Equal(t, 3.0, points)
	assert.Equal(t, []string{"linkedin-not-accessible", "linkedin-limited-verification"}, flagCategories(flags))
}

func TestScoreLinkedInMissing(t *testing.T) {
	v := newTestValidator()
	points, flags := v.scoreLinkedIn(nil)

	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, types.SeverityHigh, flags[0].Severity)
	assert.Equal(t, "LinkedIn URL not provided", flags[0].Message)
}

func TestScorePortfolioOptional(t *testing.T) {
	v := newTestValidator()
	points, flags := v.scorePortfolio(nil)

	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, types.SeverityLow, flags[0].Severity)
	assert.Equal(t, "Portfolio URL not provided (optional)", flags[0].Message)
}

func TestScorePortfolioSectionBonuses(t *testing.T) {
	tests := []struct {
		name       string
		signals    types.QualitySignals
		wantPoints float64
		wantFlags  []string
	}{
		{
			name:       "all sections present",
			signals:    types.QualitySignals{HasProjectsSection: true, HasAboutSection: true, HasContactInfo: true},
			wantPoints: 5.0,
			wantFlags:  nil,
		},
		{
			name:       "reachable but bare",
			signals:    types.QualitySignals{},
			wantPoints: 2.0,
			wantFlags:  []string{"portfolio-no-projects", "portfolio-no-about", "portfolio-no-contact"},
		},
		{
			name:       "projects only",
			signals:    types.QualitySignals{HasProjectsSection: true},
			wantPoints: 3.5,
			wantFlags:  []string{"portfolio-no-about", "portfolio-no-contact"},
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := goodPortfolio()
			result.Signals = tt.signals
			points, flags := v.scorePortfolio(result)
			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantFlags, flagCategories(flags))
		})
	}
}

func TestScorePortfolioInvalidFormat(t *testing.T) {
	v := newTestValidator()
	points, flags := v.scorePortfolio(&types.LinkCheckResult{URL: "::::"})

	assert.Equal(t, 0.0, points)
	require.Len(t, flags, 1)
	assert.Equal(t, types.SeverityMedium, flags[0].Severity)
}

func TestScoreFlagOrdering(t *testing.T) {
	v := newTestValidator()
	score := v.Score(nil, nil, nil, types.LevelExpert, seniorFeatures())

	assert.Equal(t, 0.0, score.Points)
	assert.Equal(t, []string{
		"github-missing",
		"linkedin-missing",
		"portfolio-missing",
		"experience-mismatch",
	}, flagCategories(score.Flags))
}
