package scoring

import (
	"strings"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// Thresholds is the risk tier policy: a final score at or above Low is low
// risk, at or above Medium is medium risk, and anything below is high risk.
// Both boundaries are inclusive on the lower bound of their tier.
type Thresholds struct {
	Low    float64
	Medium float64
}

// DefaultThresholds returns the documented tier policy.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 80, Medium: 55}
}

// Aggregate combines the three component scores into the final evaluation
// result using the default tier policy.
func Aggregate(language, pattern, validation types.ComponentScore) types.EvaluationResult {
	return AggregateWith(DefaultThresholds(), language, pattern, validation)
}

// AggregateWith sums the component points (clamped to [0, 100]), classifies
// the risk tier, derives the recommendation, and merges the component flags.
// It is a total, deterministic function: calling it twice with the same
// inputs yields identical results.
func AggregateWith(thresholds Thresholds, language, pattern, validation types.ComponentScore) types.EvaluationResult {
	finalScore := clamp(language.Points+pattern.Points+validation.Points, 0, 100)

	tier := classifyRisk(finalScore, thresholds)

	return types.EvaluationResult{
		FinalScore:     finalScore,
		RiskTier:       tier,
		Recommendation: recommendationFor(tier),
		Components: types.ComponentBreakdown{
			Language:   language,
			Pattern:    pattern,
			Validation: validation,
		},
		Flags: mergeFlags(language.Flags, pattern.Flags, validation.Flags),
	}
}

func classifyRisk(finalScore float64, thresholds Thresholds) types.RiskTier {
	switch {
	case finalScore >= thresholds.Low:
		return types.RiskLow
	case finalScore >= thresholds.Medium:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

func recommendationFor(tier types.RiskTier) types.Recommendation {
	switch tier {
	case types.RiskLow:
		return types.RecommendationTrustworthy
	case types.RiskMedium:
		return types.RecommendationModerate
	default:
		return types.RecommendationRisky
	}
}

// mergeFlags concatenates the flag lists in AI-before-rules order (language,
// then pattern, then validation) and drops later flags whose message matches
// an earlier one case-insensitively. The comparison is exact apart from case;
// messages differing in whitespace stay distinct. Survivors keep their
// original positions.
func mergeFlags(lists ...[]types.Flag) []types.Flag {
	merged := []types.Flag{}
	seen := map[string]bool{}
	for _, list := range lists {
		for _, flag := range list {
			key := strings.ToLower(flag.Message)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, flag)
		}
	}
	return merged
}
