package linkcheck

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// Keyword groups used to spot the sections a credible portfolio carries.
var (
	projectsKeywords = []string{"project", "portfolio", "work", "showcase"}
	aboutKeywords    = []string{"about", "bio", "profile", "introduction"}
	contactKeywords  = []string{"contact", "email", "reach", "@"}
)

// analyzePortfolioPage inspects rendered HTML for the section signals the
// validation component awards points for. Keyword matching runs over visible
// text plus heading and anchor attributes so single-page sites with sparse
// prose still register.
func analyzePortfolioPage(html string) types.QualitySignals {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.QualitySignals{}
	}

	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	sb.WriteString(doc.Text())
	doc.Find("a, section, div, nav").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"id", "class", "href"} {
			if v, ok := s.Attr(attr); ok {
				sb.WriteString(" ")
				sb.WriteString(v)
			}
		}
	})
	haystack := strings.ToLower(sb.String())

	return types.QualitySignals{
		HasProjectsSection: containsAny(haystack, projectsKeywords),
		HasAboutSection:    containsAny(haystack, aboutKeywords),
		HasContactInfo:     containsAny(haystack, contactKeywords),
	}
}

func containsAny(haystack string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
