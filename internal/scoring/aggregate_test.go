package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trust-evaluator/internal/types"
)

func componentScore(points float64, max float64, flags ...types.Flag) types.ComponentScore {
	return types.ComponentScore{Points: points, MaxPoints: max, Flags: flags}
}

func TestAggregate_SumsComponentPoints(t *testing.T) {
	result := Aggregate(
		componentScore(20, types.LanguageMaxPoints),
		componentScore(40, types.PatternMaxPoints),
		componentScore(25, types.ValidationMaxPoints),
	)
	assert.Equal(t, 85.0, result.FinalScore)
	assert.Equal(t, 20.0, result.Components.Language.Points)
	assert.Equal(t, 40.0, result.Components.Pattern.Points)
	assert.Equal(t, 25.0, result.Components.Validation.Points)
}

func TestAggregate_AllZeroAndAllMax(t *testing.T) {
	zero := Aggregate(
		componentScore(0, types.LanguageMaxPoints),
		componentScore(0, types.PatternMaxPoints),
		componentScore(0, types.ValidationMaxPoints),
	)
	assert.Equal(t, 0.0, zero.FinalScore)
	assert.Equal(t, types.RiskHigh, zero.RiskTier)

	max := Aggregate(
		componentScore(25, types.LanguageMaxPoints),
		componentScore(45, types.PatternMaxPoints),
		componentScore(30, types.ValidationMaxPoints),
	)
	assert.Equal(t, 100.0, max.FinalScore)
	assert.Equal(t, types.RiskLow, max.RiskTier)
}

func TestAggregate_RiskTierBoundaries(t *testing.T) {
	tierFor := func(finalScore float64) types.RiskTier {
		return Aggregate(
			componentScore(finalScore, types.LanguageMaxPoints),
			componentScore(0, types.PatternMaxPoints),
			componentScore(0, types.ValidationMaxPoints),
		).RiskTier
	}

	assert.Equal(t, types.RiskLow, tierFor(80.0))
	assert.Equal(t, types.RiskMedium, tierFor(79.99))
	assert.Equal(t, types.RiskMedium, tierFor(55.0))
	assert.Equal(t, types.RiskHigh, tierFor(54.99))
}

func TestAggregate_RecommendationFollowsTier(t *testing.T) {
	cases := map[float64]types.Recommendation{
		90.0: types.RecommendationTrustworthy,
		60.0: types.RecommendationModerate,
		10.0: types.RecommendationRisky,
	}
	for points, want := range cases {
		result := Aggregate(
			componentScore(points, types.LanguageMaxPoints),
			componentScore(0, types.PatternMaxPoints),
			componentScore(0, types.ValidationMaxPoints),
		)
		assert.Equal(t, want, result.Recommendation)
	}
}

func TestAggregate_ClampsDefensively(t *testing.T) {
	// Components are individually bounded, so clamping should never correct
	// real inputs, but the invariant holds even for malformed ones.
	result := Aggregate(
		componentScore(60, types.LanguageMaxPoints),
		componentScore(60, types.PatternMaxPoints),
		componentScore(60, types.ValidationMaxPoints),
	)
	assert.Equal(t, 100.0, result.FinalScore)
}

func TestAggregate_FlagOrderIsAIBeforeRules(t *testing.T) {
	languageFlag := types.Flag{Source: types.SourceLanguage, Category: "clarity", Severity: types.SeverityLow, Message: "vague wording"}
	validationFlag := types.Flag{Source: types.SourceValidation, Category: "github-missing", Severity: types.SeverityHigh, Message: "no GitHub profile"}

	result := Aggregate(
		componentScore(10, types.LanguageMaxPoints, languageFlag),
		componentScore(10, types.PatternMaxPoints),
		componentScore(10, types.ValidationMaxPoints, validationFlag),
	)

	require.Len(t, result.Flags, 2)
	assert.Equal(t, types.SourceLanguage, result.Flags[0].Source)
	assert.Equal(t, types.SourceValidation, result.Flags[1].Source)
}

func TestAggregate_DeduplicatesCaseInsensitively(t *testing.T) {
	first := types.Flag{Source: types.SourcePattern, Category: "overlapping-timelines", Severity: types.SeverityMedium, Message: "Timeline Overlap Detected"}
	duplicate := types.Flag{Source: types.SourceValidation, Category: "experience-mismatch", Severity: types.SeverityHigh, Message: "timeline overlap detected"}
	distinct := types.Flag{Source: types.SourceValidation, Category: "portfolio-missing", Severity: types.SeverityLow, Message: "no portfolio provided"}

	result := Aggregate(
		componentScore(10, types.LanguageMaxPoints),
		componentScore(10, types.PatternMaxPoints, first),
		componentScore(10, types.ValidationMaxPoints, duplicate, distinct),
	)

	require.Len(t, result.Flags, 2)
	// First occurrence survives in its original position.
	assert.Equal(t, "Timeline Overlap Detected", result.Flags[0].Message)
	assert.Equal(t, "no portfolio provided", result.Flags[1].Message)
}

func TestAggregate_DedupIsExactApartFromCase(t *testing.T) {
	base := types.Flag{Source: types.SourcePattern, Category: "overlapping-timelines", Severity: types.SeverityMedium, Message: "timeline overlap detected"}
	padded := types.Flag{Source: types.SourceValidation, Category: "experience-mismatch", Severity: types.SeverityHigh, Message: " timeline overlap detected "}

	result := Aggregate(
		componentScore(10, types.LanguageMaxPoints),
		componentScore(10, types.PatternMaxPoints, base),
		componentScore(10, types.ValidationMaxPoints, padded),
	)

	// Only case is normalized; messages differing in whitespace are distinct.
	require.Len(t, result.Flags, 2)
	assert.Equal(t, "timeline overlap detected", result.Flags[0].Message)
	assert.Equal(t, " timeline overlap detected ", result.Flags[1].Message)
}

func TestAggregate_EmptyFlagsYieldEmptySlice(t *testing.T) {
	result := Aggregate(
		componentScore(10, types.LanguageMaxPoints),
		componentScore(10, types.PatternMaxPoints),
		componentScore(10, types.ValidationMaxPoints),
	)
	assert.NotNil(t, result.Flags)
	assert.Empty(t, result.Flags)
}

func TestAggregate_Idempotent(t *testing.T) {
	language := componentScore(18.2, types.LanguageMaxPoints,
		types.Flag{Source: types.SourceLanguage, Category: "tense", Severity: types.SeverityLow, Message: "mixed tenses"})
	pattern := componentScore(31.4, types.PatternMaxPoints)
	validation := componentScore(12.0, types.ValidationMaxPoints)

	first := Aggregate(language, pattern, validation)
	second := Aggregate(language, pattern, validation)
	assert.Equal(t, first, second)
}

func TestAggregateWith_CustomThresholds(t *testing.T) {
	thresholds := Thresholds{Low: 90, Medium: 70}
	result := AggregateWith(thresholds,
		componentScore(25, types.LanguageMaxPoints),
		componentScore(45, types.PatternMaxPoints),
		componentScore(15, types.ValidationMaxPoints),
	)
	assert.Equal(t, 85.0, result.FinalScore)
	assert.Equal(t, types.RiskMedium, result.RiskTier)
}
