// Package types provides type definitions for structured data used throughout the trust-evaluator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeFeatures holds the numeric project-history indicators derived from
// resume text. All fields default to their zero value when extraction finds
// no evidence; extraction under-reports rather than failing.
type ResumeFeatures struct {
	ProjectCount                 int     `json:"project_count"`
	TotalExperienceYears         float64 `json:"total_experience_years"`
	AverageProjectDurationMonths float64 `json:"average_project_duration_months"`
	OverlappingProjectCount      int     `json:"overlapping_project_count"`
	TechnologyConsistency        float64 `json:"technology_consistency"`
	LinkVerificationRatio        float64 `json:"link_verification_ratio"`
}

// Vector returns the features as an ordered numeric slice, the fixed encoding
// consumed by the sequence-model collaborator.
func (f ResumeFeatures) Vector() []float64 {
	return []float64{
		float64(f.ProjectCount),
		f.TotalExperienceYears,
		f.AverageProjectDurationMonths,
		float64(f.OverlappingProjectCount),
		f.TechnologyConsistency,
		f.LinkVerificationRatio,
	}
}
