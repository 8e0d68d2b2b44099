// Package types provides type definitions for structured data used throughout the trust-evaluator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// ExperienceLevel is the self-reported experience tier of the subject being
// evaluated. It is a closed enumeration; callers must parse user input with
// ParseExperienceLevel before handing a level to the pipeline.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelExpert ExperienceLevel = "expert"
)

// AllExperienceLevels lists the levels in ascending seniority order.
func AllExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelExpert}
}

// ParseExperienceLevel converts user-supplied text to an ExperienceLevel.
// Matching is case-insensitive and tolerates surrounding whitespace and a few
// common synonyms ("junior", "intermediate").
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "junior", "entry-level":
		return LevelEntry, nil
	case "mid", "intermediate", "mid-level":
		return LevelMid, nil
	case "senior":
		return LevelSenior, nil
	case "expert", "principal":
		return LevelExpert, nil
	default:
		return "", fmt.Errorf("unknown experience level %q (expected entry, mid, senior, or expert)", s)
	}
}

// String returns the canonical lowercase name.
func (l ExperienceLevel) String() string { return string(l) }

// Title returns the level name capitalized for user-facing messages.
func (l ExperienceLevel) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}
