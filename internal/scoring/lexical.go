// Package scoring implements the language, pattern, and aggregation stages of
// the trust evaluation pipeline. Every function here is pure: identical
// inputs always produce identical outputs.
package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// Vague filler phrases that signal a lack of specificity.
var vagueTerms = []string{
	"various", "several", "multiple", "many", "some", "few", "numerous",
	"stuff", "things", "etc", "and so on", "responsible for", "worked on",
	"involved in", "helped with", "participated in", "familiar with",
	"knowledge of",
}

var weakVerbs = []string{
	"did", "made", "got", "went", "came", "was", "were", "helped", "worked",
	"tried", "attempted",
}

var strongVerbs = []string{
	"achieved", "accomplished", "designed", "developed", "implemented",
	"created", "built", "led", "managed", "optimized", "improved",
	"delivered", "launched", "established", "spearheaded", "pioneered",
	"engineered", "architected", "streamlined", "executed", "coordinated",
}

// technologyVariants maps a canonical technology name to the spellings that
// should not be mixed within one resume.
var technologyVariants = map[string][]string{
	"javascript": {"javascript", "java script", "js"},
	"typescript": {"typescript", "type script", "ts"},
	"nodejs":     {"node.js", "nodejs", "node js"},
	"reactjs":    {"react.js", "reactjs", "react js"},
	"mongodb":    {"mongodb", "mongo db"},
	"postgresql": {"postgresql", "postgres", "postgre sql"},
	"mysql":      {"mysql", "my sql"},
	"github":     {"github", "git hub"},
	"kubernetes": {"kubernetes", "k8s"},
}

var pastTenseVerbs = []string{"developed", "created", "built", "implemented", "designed", "managed", "led"}
var presentTenseVerbs = []string{"develop", "create", "build", "implement", "design", "manage", "lead"}

var wordBoundaryCache = map[string]*regexp.Regexp{}

func init() {
	for _, lists := range [][]string{weakVerbs, strongVerbs, pastTenseVerbs, presentTenseVerbs} {
		for _, w := range lists {
			if _, ok := wordBoundaryCache[w]; !ok {
				wordBoundaryCache[w] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
			}
		}
	}
}

func countWordMatches(textLower string, words []string) int {
	count := 0
	for _, w := range words {
		if wordBoundaryCache[w].MatchString(textLower) {
			count++
		}
	}
	return count
}

// lexicalFlags runs the four language-quality detectors over resume text.
// Each category fires at most once regardless of how many instances of the
// issue the text contains.
func lexicalFlags(resumeText string) []types.Flag {
	var flags []types.Flag
	textLower := strings.ToLower(resumeText)
	wordCount := len(strings.Fields(resumeText))

	if flag, ok := clarityFlag(textLower, wordCount); ok {
		flags = append(flags, flag)
	}
	if flag, ok := verbStrengthFlag(textLower); ok {
		flags = append(flags, flag)
	}
	if flag, ok := terminologyFlag(textLower); ok {
		flags = append(flags, flag)
	}
	if flag, ok := tenseFlag(textLower); ok {
		flags = append(flags, flag)
	}
	return flags
}

// clarityFlag fires when vague filler phrases make up too large a share of
// the text.
func clarityFlag(textLower string, wordCount int) (types.Flag, bool) {
	if wordCount == 0 {
		return types.Flag{}, false
	}
	vagueCount := 0
	for _, term := range vagueTerms {
		if strings.Contains(textLower, term) {
			vagueCount++
		}
	}
	if float64(vagueCount)/float64(wordCount) <= 0.05 {
		return types.Flag{}, false
	}
	return types.Flag{
		Source:   types.SourceLanguage,
		Category: "clarity",
		Severity: types.SeverityLow,
		Message:  fmt.Sprintf("Resume contains %d vague terms. Consider being more specific about accomplishments.", vagueCount),
	}, true
}

// verbStrengthFlag fires when weak verbs outnumber strong ones and appear
// often enough to set the tone.
func verbStrengthFlag(textLower string) (types.Flag, bool) {
	weak := countWordMatches(textLower, weakVerbs)
	strong := countWordMatches(textLower, strongVerbs)
	if weak <= 3 || strong >= weak {
		return types.Flag{}, false
	}
	return types.Flag{
		Source:   types.SourceLanguage,
		Category: "verb-strength",
		Severity: types.SeverityLow,
		Message:  fmt.Sprintf("Resume relies on %d weak action verbs. Strong verbs make achievements more impactful.", weak),
	}, true
}

// terminologyFlag fires when the same technology is written several different
// ways.
func terminologyFlag(textLower string) (types.Flag, bool) {
	var inconsistent []string
	for canonical, variants := range technologyVariants {
		used := 0
		for _, v := range variants {
			if strings.Contains(textLower, v) {
				used++
			}
		}
		if used > 1 {
			inconsistent = append(inconsistent, canonical)
		}
	}
	if len(inconsistent) == 0 {
		return types.Flag{}, false
	}
	return types.Flag{
		Source:   types.SourceLanguage,
		Category: "terminology",
		Severity: types.SeverityMedium,
		Message:  "Technologies are named inconsistently across the resume. Use one spelling per technology.",
	}, true
}

// tenseFlag fires when past and present tense verbs are both common,
// suggesting inconsistent tense within experience entries.
func tenseFlag(textLower string) (types.Flag, bool) {
	past := countWordMatches(textLower, pastTenseVerbs)
	present := countWordMatches(textLower, presentTenseVerbs)
	if past <= 2 || present <= 2 {
		return types.Flag{}, false
	}
	return types.Flag{
		Source:   types.SourceLanguage,
		Category: "tense",
		Severity: types.SeverityLow,
		Message:  "Resume mixes past and present tense. Use past tense for previous roles and present tense only for current work.",
	}, true
}
