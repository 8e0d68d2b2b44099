package extraction

import (
	"time"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// Extract derives the six project-history indicators from resume text. It is
// a pure function of its inputs and never fails: an empty or unparseable
// resume yields all-neutral features.
func Extract(resumeText string) types.ResumeFeatures {
	return ExtractAt(resumeText, time.Now())
}

// ExtractAt is Extract with an explicit reference time, used to resolve
// "present" end dates deterministically in tests.
func ExtractAt(resumeText string, now time.Time) types.ResumeFeatures {
	projects := ExtractProjects(resumeText, now)
	if len(projects) == 0 {
		return types.ResumeFeatures{}
	}

	return types.ResumeFeatures{
		ProjectCount:                 len(projects),
		TotalExperienceYears:         totalExperienceYears(projects),
		AverageProjectDurationMonths: averageDurationMonths(projects),
		OverlappingProjectCount:      countOverlaps(projects),
		TechnologyConsistency:        technologyConsistency(projects),
		LinkVerificationRatio:        linkRatio(projects),
	}
}

// totalExperienceYears sums parsed project durations. Projects without a
// parsed duration contribute nothing.
func totalExperienceYears(projects []Project) float64 {
	months := 0.0
	for _, p := range projects {
		months += p.DurationMonths
	}
	return months / 12
}

// averageDurationMonths is the mean over projects that have a parsed
// duration, 0 when none do.
func averageDurationMonths(projects []Project) float64 {
	sum := 0.0
	count := 0
	for _, p := range projects {
		if p.DurationMonths > 0 {
			sum += p.DurationMonths
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// countOverlaps counts unordered pairs of dated projects whose ranges
// intersect, inclusive on both ends. Pairs are taken over the deduplicated
// project list; quadratic cost is fine at resume scale.
func countOverlaps(projects []Project) int {
	var dated []Project
	for _, p := range projects {
		if p.HasDates {
			dated = append(dated, p)
		}
	}

	count := 0
	for i := 0; i < len(dated); i++ {
		for j := i + 1; j < len(dated); j++ {
			if rangesOverlap(dated[i], dated[j]) {
				count++
			}
		}
	}
	return count
}

func rangesOverlap(a, b Project) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// technologyConsistency combines how often technologies recur across projects
// (reuse) with a penalty for an excessive spread of distinct technologies
// (focus). Neutral 0.5 when no technologies were detected at all.
func technologyConsistency(projects []Project) float64 {
	counts := map[string]int{}
	total := 0
	for _, p := range projects {
		for _, tech := range p.Technologies {
			counts[tech]++
			total++
		}
	}
	if total == 0 {
		return 0.5
	}

	unique := float64(len(counts))
	projectCount := float64(len(projects))

	avgReuse := float64(total) / unique
	reuseBaseline := projectCount * 0.3
	if reuseBaseline < 2 {
		reuseBaseline = 2
	}
	reuse := avgReuse / reuseBaseline
	if reuse > 1 {
		reuse = 1
	}

	// Roughly three technologies per project is a reasonable spread.
	expected := projectCount * 3
	excess := (unique - expected) / expected
	if excess < 0 {
		excess = 0
	}
	if excess > 1 {
		excess = 1
	}
	focus := 1 - excess

	score := 0.6*reuse + 0.4*focus
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// linkRatio is the fraction of projects that carry at least one URL.
func linkRatio(projects []Project) float64 {
	withLinks := 0
	for _, p := range projects {
		if len(p.Links) > 0 {
			withLinks++
		}
	}
	return float64(withLinks) / float64(len(projects))
}
