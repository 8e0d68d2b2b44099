// Package validation implements the rule-based evaluation component: profile
// link scoring and claimed-experience consistency checks.
package validation

import (
	"fmt"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/types"
)

// Sub-component point budgets. They sum to the validation component's 30.
const (
	githubMaxPoints     = 10.0
	linkedinMaxPoints   = 10.0
	portfolioMaxPoints  = 5.0
	experienceMaxPoints = 5.0
)

// Validator scores link-check results and the claimed experience level
// against extracted resume evidence.
type Validator struct {
	minGitHubRepos int
	levelRanges    map[types.ExperienceLevel]config.LevelRange
}

// NewValidator builds a Validator from service configuration.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		minGitHubRepos: cfg.GitHubMinRepos,
		levelRanges:    cfg.LevelRanges,
	}
}

// Score computes the validation component (max 30 points). A nil link result
// means the URL was not provided. Sub-scores are evaluated in a fixed order
// (GitHub, LinkedIn, portfolio, experience) and their flags keep that order.
func (v *Validator) Score(github, linkedin, portfolio *types.LinkCheckResult, claimedLevel types.ExperienceLevel, features types.ResumeFeatures) types.ComponentScore {
	points := 0.0
	var flags []types.Flag

	p, f := v.scoreGitHub(github)
	points, flags = points+p, append(flags, f...)

	p, f = v.scoreLinkedIn(linkedin)
	points, flags = points+p, append(flags, f...)

	p, f = v.scorePortfolio(portfolio)
	points, flags = points+p, append(flags, f...)

	p, f = v.scoreExperience(claimedLevel, features)
	points, flags = points+p, append(flags, f...)

	if points > types.ValidationMaxPoints {
		points = types.ValidationMaxPoints
	}
	return types.ComponentScore{
		Points:    points,
		MaxPoints: types.ValidationMaxPoints,
		Flags:     flags,
	}
}

// scoreGitHub awards 4 points for a reachable profile, 3 for a repository
// count above the configured minimum, 2 for recent activity, and 1 for a bio.
func (v *Validator) scoreGitHub(result *types.LinkCheckResult) (float64, []types.Flag) {
	if result == nil {
		return 0, []types.Flag{validationFlag("github-missing", types.SeverityHigh,
			"GitHub URL not provided")}
	}
	if !result.WellFormed {
		return 0, []types.Flag{validationFlag("github-invalid-format", types.SeverityHigh,
			fmt.Sprintf("Invalid GitHub URL format: %s", result.URL))}
	}
	if !result.Reachable {
		return 0, []types.Flag{unreachableFlag("github", "GitHub profile", types.SeverityHigh, result)}
	}

	points := 4.0
	var flags []types.Flag

	if result.Signals.RepoCount > v.minGitHubRepos {
		points += 3
	} else {
		flags = append(flags, validationFlag("github-low-repos", types.SeverityMedium,
			fmt.Sprintf("Only %d public repositories (more than %d expected for full credit)", result.Signals.RepoCount, v.minGitHubRepos)))
	}

	if result.Signals.RecentActivity {
		points += 2
	} else {
		flags = append(flags, validationFlag("github-no-activity", types.SeverityMedium,
			"No recent public GitHub activity detected"))
	}

	if result.Signals.HasBio {
		points += 1
	} else {
		flags = append(flags, validationFlag("github-no-bio", types.SeverityLow,
			"GitHub profile has no bio or description"))
	}

	return points, flags
}

// scoreLinkedIn awards 7 points for a reachable, well-formed profile and a
// further 3 for well-formedness on its own. The base and format points are
// deliberately additive even though they largely gate on the same condition;
// downstream consumers depend on the documented split.
func (v *Validator) scoreLinkedIn(result *types.LinkCheckResult) (float64, []types.Flag) {
	if result == nil {
		return 0, []types.Flag{validationFlag("linkedin-missing", types.SeverityHigh,
			"LinkedIn URL not provided")}
	}
	if !result.WellFormed {
		return 0, []types.Flag{validationFlag("linkedin-invalid-format", types.SeverityHigh,
			fmt.Sprintf("Invalid LinkedIn URL format: %s", result.URL))}
	}

	points := 3.0 // well-formed URL
	var flags []types.Flag

	if result.Reachable {
		points += 7
	} else {
		flags = append(flags, unreachableFlag("linkedin", "LinkedIn profile", types.SeverityHigh, result))
	}

	// Deep profile verification needs privileged API access, so the check is
	// accessibility-only. Callers always see this limitation stated.
	flags = append(flags, validationFlag("linkedin-limited-verification", types.SeverityInfo,
		"LinkedIn profile verified for accessibility only. Full quality check requires API access."))

	return points, flags
}

// scorePortfolio awards 2 points for reachability plus section bonuses from
// keyword detection on the fetched page. A portfolio is optional: absence
// costs the points but only earns an informational flag.
func (v *Validator) scorePortfolio(result *types.LinkCheckResult) (float64, []types.Flag) {
	if result == nil {
		return 0, []types.Flag{validationFlag("portfolio-missing", types.SeverityLow,
			"Portfolio URL not provided (optional)")}
	}
	if !result.WellFormed {
		return 0, []types.Flag{validationFlag("portfolio-invalid-format", types.SeverityMedium,
			fmt.Sprintf("Invalid portfolio URL format: %s", result.URL))}
	}
	if !result.Reachable {
		return 0, []types.Flag{unreachableFlag("portfolio", "Portfolio website", types.SeverityMedium, result)}
	}

	points := 2.0
	var flags []types.Flag

	if result.Signals.HasProjectsSection {
		points += 1.5
	} else {
		flags = append(flags, validationFlag("portfolio-no-projects", types.SeverityMedium,
			"Portfolio does not appear to have a projects section"))
	}
	if result.Signals.HasAboutSection {
		points += 1
	} else {
		flags = append(flags, validationFlag("portfolio-no-about", types.SeverityLow,
			"Portfolio does not appear to have an about section"))
	}
	if result.Signals.HasContactInfo {
		points += 0.5
	} else {
		flags = append(flags, validationFlag("portfolio-no-contact", types.SeverityLow,
			"Portfolio does not appear to have contact information"))
	}

	return points, flags
}

func validationFlag(category string, severity types.Severity, message string) types.Flag {
	return types.Flag{
		Source:   types.SourceValidation,
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// unreachableFlag words a failed reachability check differently from a
// confirmed dead link: "couldn't verify" and "confirmed broken" call for
// different remediation.
func unreachableFlag(platform, label string, severity types.Severity, result *types.LinkCheckResult) types.Flag {
	if result.CheckFailed {
		return validationFlag(platform+"-check-failed", severity,
			fmt.Sprintf("%s could not be verified (validation error during reachability check)", label))
	}
	return validationFlag(platform+"-not-accessible", severity,
		fmt.Sprintf("%s confirmed unreachable", label))
}
