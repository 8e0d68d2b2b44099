// Package extraction derives project-history indicators from resume text.
// Extraction never fails: absence of evidence produces neutral values, not
// errors.
package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	monthYearPattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{4})\b`)
	numericPattern   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{4})\b`)
	yearPattern      = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	presentPattern   = regexp.MustCompile(`(?i)\b(present|current|ongoing|now)\b`)
	durationPattern  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(months?|mos?\b|years?|yrs?\b|weeks?|wks?\b)`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// daysPerMonth is the mean Gregorian month length, used to convert date spans
// to months.
const daysPerMonth = 30.44

// parseDates finds every recognizable date in text. Supported formats are
// month-year ("Jan 2022", "January 2022"), numeric month/year ("01/2022",
// "1-2022"), and bare years. Years outside [1990, now+1] are ignored as
// noise (page numbers, ID fragments). Results are sorted and deduplicated.
func parseDates(text string, now time.Time) []time.Time {
	maxYear := now.Year() + 1
	seen := map[time.Time]bool{}
	var dates []time.Time

	add := func(year int, month time.Month) {
		if year < 1990 || year > maxYear {
			return
		}
		d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	consumed := make([]bool, len(text))
	mark := func(lo, hi int) {
		for i := lo; i < hi && i < len(consumed); i++ {
			consumed[i] = true
		}
	}

	for _, m := range monthYearPattern.FindAllStringSubmatchIndex(text, -1) {
		prefix := strings.ToLower(text[m[2]:m[5]])[:3]
		year, _ := strconv.Atoi(text[m[4]:m[5]])
		add(year, monthsByPrefix[prefix])
		mark(m[0], m[1])
	}
	for _, m := range numericPattern.FindAllStringSubmatchIndex(text, -1) {
		if consumed[m[0]] {
			continue
		}
		month, _ := strconv.Atoi(text[m[2]:m[3]])
		year, _ := strconv.Atoi(text[m[4]:m[5]])
		if month >= 1 && month <= 12 {
			add(year, time.Month(month))
			mark(m[0], m[1])
		}
	}
	for _, m := range yearPattern.FindAllStringSubmatchIndex(text, -1) {
		if consumed[m[0]] {
			continue
		}
		year, _ := strconv.Atoi(text[m[2]:m[3]])
		add(year, time.January)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// extractDateRange derives a [start, end] range from the dates in text.
// A "present"/"current" marker counts as an end date of now. A single date
// with no range marker is not enough to form a range; the caller treats the
// project as undated for duration and overlap purposes.
func extractDateRange(text string, now time.Time) (start, end time.Time, ok bool) {
	dates := parseDates(text, now)
	if presentPattern.MatchString(text) {
		dates = append(dates, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	}
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, false
	}
	start, end = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end, true
}

// extractExplicitDuration finds spelled-out durations like "6 months" or
// "2 years" and converts them to months. Returns 0 when none is present.
func extractExplicitDuration(text string) float64 {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch unit := strings.ToLower(m[2]); {
	case strings.HasPrefix(unit, "year"), strings.HasPrefix(unit, "yr"):
		return value * 12
	case strings.HasPrefix(unit, "week"), strings.HasPrefix(unit, "wk"):
		return value / 4.33
	default:
		return value
	}
}

// rangeMonths converts a date span to months, with a one month floor for
// same-month ranges.
func rangeMonths(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	months := days / daysPerMonth
	if months < 1 {
		return 1
	}
	return months
}
