package scoring

import (
	"strings"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// ScoreLanguage converts the embedding collaborator's confidence scalar into
// language points and attaches lexical quality flags. Points come from
// confidence alone; flags come from the text alone. The two channels never
// feed each other.
func ScoreLanguage(confidence float64, resumeText string) types.ComponentScore {
	points := clamp(confidence, 0, 1) * types.LanguageMaxPoints

	if strings.TrimSpace(resumeText) == "" {
		return types.ComponentScore{
			Points:    points,
			MaxPoints: types.LanguageMaxPoints,
			Flags: []types.Flag{{
				Source:   types.SourceLanguage,
				Category: "unanalyzable",
				Severity: types.SeverityHigh,
				Message:  "Resume contains no analyzable text.",
			}},
		}
	}

	return types.ComponentScore{
		Points:    points,
		MaxPoints: types.LanguageMaxPoints,
		Flags:     lexicalFlags(resumeText),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
