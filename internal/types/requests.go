// Package types provides type definitions for structured data used throughout the trust-evaluator system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// EvaluateRequest is the caller-facing request for a trust evaluation. The
// three profile URLs are optional; ClaimedLevel must parse as an
// ExperienceLevel.
type EvaluateRequest struct {
	ResumeText   string `json:"resume_text" validate:"required,min=1"`
	GitHubURL    string `json:"github_url,omitempty" validate:"omitempty,url"`
	LinkedInURL  string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	PortfolioURL string `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	ClaimedLevel string `json:"claimed_level" validate:"required"`
}

// Validate validates the EvaluateRequest using the validator.
func (r *EvaluateRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	_, err := ParseExperienceLevel(r.ClaimedLevel)
	return err
}
