package scoring

import (
	"fmt"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// Project-history anomaly thresholds. Each category has a medium and a high
// tier; when both are met only the high tier fires.
const (
	projectCountMedium = 40
	projectCountHigh   = 60

	overlapRatioMedium = 0.30
	overlapRatioHigh   = 0.50

	projectsPerYearMedium = 8.0
	projectsPerYearHigh   = 12.0

	trustProbabilityMedium = 0.50
	trustProbabilityLow    = 0.30

	// Floor on the experience denominator so near-zero experience does not
	// blow up the projects-per-year rate.
	minExperienceYears = 0.1
)

// ScorePattern converts the sequence-model collaborator's trust probability
// into pattern points and evaluates the anomaly thresholds over the extracted
// features. All four categories are checked independently on every call.
func ScorePattern(trustProbability float64, features types.ResumeFeatures) types.ComponentScore {
	p := clamp(trustProbability, 0, 1)

	var flags []types.Flag
	if flag, ok := unrealisticProjectsFlag(features); ok {
		flags = append(flags, flag)
	}
	if flag, ok := overlappingTimelinesFlag(features); ok {
		flags = append(flags, flag)
	}
	if flag, ok := inflatedExperienceFlag(features); ok {
		flags = append(flags, flag)
	}
	if flag, ok := weakConsistencyFlag(p); ok {
		flags = append(flags, flag)
	}

	return types.ComponentScore{
		Points:    p * types.PatternMaxPoints,
		MaxPoints: types.PatternMaxPoints,
		Flags:     flags,
	}
}

func unrealisticProjectsFlag(features types.ResumeFeatures) (types.Flag, bool) {
	count := features.ProjectCount
	switch {
	case count >= projectCountHigh:
		return patternFlag("unrealistic-projects", types.SeverityHigh,
			fmt.Sprintf("Very high number of projects (%d). This may indicate profile padding.", count)), true
	case count >= projectCountMedium:
		return patternFlag("unrealistic-projects", types.SeverityMedium,
			fmt.Sprintf("High number of projects (%d). Verify project authenticity.", count)), true
	}
	return types.Flag{}, false
}

func overlappingTimelinesFlag(features types.ResumeFeatures) (types.Flag, bool) {
	denominator := features.ProjectCount
	if denominator < 1 {
		denominator = 1
	}
	ratio := float64(features.OverlappingProjectCount) / float64(denominator)
	switch {
	case ratio >= overlapRatioHigh:
		return patternFlag("overlapping-timelines", types.SeverityHigh,
			fmt.Sprintf("High timeline overlap (%.0f%%). Projects may be fabricated or exaggerated.", ratio*100)), true
	case ratio >= overlapRatioMedium:
		return patternFlag("overlapping-timelines", types.SeverityMedium,
			fmt.Sprintf("Moderate timeline overlap (%.0f%%). Verify concurrent project work.", ratio*100)), true
	}
	return types.Flag{}, false
}

func inflatedExperienceFlag(features types.ResumeFeatures) (types.Flag, bool) {
	years := features.TotalExperienceYears
	if years < minExperienceYears {
		years = minExperienceYears
	}
	perYear := float64(features.ProjectCount) / years
	switch {
	case perYear >= projectsPerYearHigh:
		return patternFlag("inflated-experience", types.SeverityHigh,
			fmt.Sprintf("Very high projects per year (%.1f). Experience claims may be inflated.", perYear)), true
	case perYear >= projectsPerYearMedium:
		return patternFlag("inflated-experience", types.SeverityMedium,
			fmt.Sprintf("High projects per year (%.1f). Verify experience duration.", perYear)), true
	}
	return types.Flag{}, false
}

func weakConsistencyFlag(trustProbability float64) (types.Flag, bool) {
	switch {
	case trustProbability <= trustProbabilityLow:
		return patternFlag("weak-consistency", types.SeverityHigh,
			fmt.Sprintf("Very low trust probability (%.0f%%). Technical claims lack consistency.", trustProbability*100)), true
	case trustProbability <= trustProbabilityMedium:
		return patternFlag("weak-consistency", types.SeverityMedium,
			fmt.Sprintf("Low trust probability (%.0f%%). Review technical skill claims.", trustProbability*100)), true
	}
	return types.Flag{}, false
}

func patternFlag(category string, severity types.Severity, message string) types.Flag {
	return types.Flag{
		Source:   types.SourcePattern,
		Category: category,
		Severity: severity,
		Message:  message,
	}
}
