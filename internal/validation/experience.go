package validation

import (
	"fmt"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/types"
)

// yearsTolerance softens the year-range check so resumes sitting just outside
// a band are not penalized for rounding in date extraction. Project counts
// are checked strictly.
const yearsTolerance = 0.5

// scoreExperience is all-or-nothing: full points when both extracted years
// and project count fall inside the claimed level's ranges, zero plus a
// high-severity flag otherwise.
func (v *Validator) scoreExperience(claimed types.ExperienceLevel, features types.ResumeFeatures) (float64, []types.Flag) {
	rng, ok := v.levelRanges[claimed]
	if !ok {
		return 0, []types.Flag{validationFlag("experience-unknown-level", types.SeverityHigh,
			fmt.Sprintf("Unknown experience level claimed: %s", claimed))}
	}

	if yearsInRange(features.TotalExperienceYears, rng) &&
		features.ProjectCount >= rng.MinProjects && features.ProjectCount <= rng.MaxProjects {
		return experienceMaxPoints, nil
	}

	better := v.BestFitLevel(features)
	return 0, []types.Flag{validationFlag("experience-mismatch", types.SeverityHigh,
		fmt.Sprintf("Claimed %s level does not match resume evidence (%.1f years, %d projects). %s level appears to fit better.",
			claimed.Title(), features.TotalExperienceYears, features.ProjectCount, better.Title()))}
}

func yearsInRange(years float64, rng config.LevelRange) bool {
	if years < rng.MinYears-yearsTolerance {
		return false
	}
	return years <= rng.MaxYears+yearsTolerance
}

// BestFitLevel suggests the level whose ranges best match the extracted
// evidence. When both years and project count match a level exactly the most
// senior such level wins; otherwise years alone decide.
func (v *Validator) BestFitLevel(features types.ResumeFeatures) types.ExperienceLevel {
	levels := types.AllExperienceLevels()
	for i := len(levels) - 1; i >= 0; i-- {
		rng, ok := v.levelRanges[levels[i]]
		if !ok {
			continue
		}
		if yearsInRange(features.TotalExperienceYears, rng) &&
			features.ProjectCount >= rng.MinProjects && features.ProjectCount <= rng.MaxProjects {
			return levels[i]
		}
	}

	switch years := features.TotalExperienceYears; {
	case years < 2:
		return types.LevelEntry
	case years < 5:
		return types.LevelMid
	case years < 10:
		return types.LevelSenior
	default:
		return types.LevelExpert
	}
}
