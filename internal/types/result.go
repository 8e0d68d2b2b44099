// Package types provides type definitions for structured data used throughout the trust-evaluator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Maximum point budgets per scoring component. The three budgets sum to 100.
const (
	LanguageMaxPoints   = 25.0
	PatternMaxPoints    = 45.0
	ValidationMaxPoints = 30.0
)

// RiskTier is the coarse bucketing of a final score.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// Recommendation is the hiring guidance derived one-to-one from the risk tier.
type Recommendation string

const (
	RecommendationTrustworthy Recommendation = "trustworthy"
	RecommendationModerate    Recommendation = "moderate"
	RecommendationRisky       Recommendation = "risky"
)

// ComponentScore is the output of a single scoring component: a bounded point
// value and the flags detected while producing it, in detection order. Points
// and flags are independent channels.
type ComponentScore struct {
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"max_points"`
	Flags     []Flag  `json:"flags"`
}

// ComponentBreakdown groups the three component scores in an evaluation.
type ComponentBreakdown struct {
	Language   ComponentScore `json:"language"`
	Pattern    ComponentScore `json:"pattern"`
	Validation ComponentScore `json:"validation"`
}

// EvaluationResult is the final aggregate produced for one evaluation
// request. Flags are merged across components (AI-sourced before rule-based)
// and deduplicated by case-insensitive message, keeping first occurrences in
// their original positions.
type EvaluationResult struct {
	EvaluationID   string             `json:"evaluation_id,omitempty"`
	FinalScore     float64            `json:"final_score"`
	RiskTier       RiskTier           `json:"risk_tier"`
	Recommendation Recommendation     `json:"recommendation"`
	Components     ComponentBreakdown `json:"component_breakdown"`
	Flags          []Flag             `json:"flags"`
}
