package extraction

import (
	"regexp"
	"strings"
	"time"
)

// Project is a single detected project entry. Start and End are only
// meaningful when HasDates is true; DurationMonths is 0 when no date range
// and no explicit duration could be parsed.
type Project struct {
	Name           string
	Start          time.Time
	End            time.Time
	HasDates       bool
	DurationMonths float64
	Technologies   []string
	Links          []string
}

// Section headers that open a project or experience section. Freelancers
// often list projects under a general experience heading, so those count too.
var sectionHeaderPattern = regexp.MustCompile(`(?i)^[\s•*\-]*(key |major |relevant |selected |technical |professional |freelance |work )?(projects?|portfolio|work samples?|experience)\s*:?\s*$`)

// Headers that close the project section.
var sectionEndPattern = regexp.MustCompile(`(?i)^[\s•*\-]*(internships?|training|education|academic|skills|technical skills|certifications?|awards?|references?|hobbies|languages?|interests?)\s*:?\s*$`)

// Project title lines carry an engagement type marker; description lines
// start with an action verb instead.
var engagementTypePattern = regexp.MustCompile(`(?i)\(\s*(freelance|personal|client|contract|side\s*project|academic|course)\s*\)`)

var descriptionVerbPrefixes = []string{
	"integrated", "developed", "built", "created", "designed", "implemented",
	"used", "utilized", "tech:", "technologies:", "worked", "deployed",
	"configured", "managed", "led", "added",
}

// Lines like "Tech: React, Node.js" mark project boundaries in resumes that
// omit engagement type markers.
var techLinePattern = regexp.MustCompile(`(?im)^[\s•*\-]*tech(?:nolog(?:ies|y))?(?: used)?:\s*\S`)

var (
	urlPattern        = regexp.MustCompile(`https?://[^\s<>"\[\]{}|\\^` + "`" + `]+`)
	githubRepoPattern = regexp.MustCompile(`(?i)\bgithub\.com/[\w\-]+/[\w\-]+`)
	bulletSplitPattern = regexp.MustCompile(`\n[\-•*\d]+[.)]\s+|\n\n+`)
)

// technologyKeywords covers common languages, frameworks, databases, and
// tooling. Matching is token-bounded and case-insensitive.
var technologyKeywords = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php",
	"go", "rust", "swift", "kotlin", "scala", "matlab", "perl", "bash", "sql",
	"html", "css",
	"react", "angular", "vue", "django", "flask", "fastapi", "spring",
	"express", "node.js", "nodejs", "laravel", "rails", ".net", "tensorflow",
	"pytorch", "keras", "scikit-learn", "pandas", "numpy", "jquery",
	"bootstrap", "tailwind", "next.js", "gatsby",
	"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle", "dynamodb",
	"cassandra", "elasticsearch", "firebase", "mariadb",
	"docker", "kubernetes", "git", "jenkins", "aws", "azure", "gcp", "heroku",
	"nginx", "apache", "linux", "jira",
}

var technologyPatterns = buildTechnologyPatterns()

func buildTechnologyPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(technologyKeywords))
	for _, keyword := range technologyKeywords {
		// \b misbehaves around "+", "#", and ".", so token boundaries are
		// spelled out explicitly.
		patterns[keyword] = regexp.MustCompile(`(?i)(?:^|[^\w+#.])` + regexp.QuoteMeta(keyword) + `(?:[^\w+#.]|$)`)
	}
	return patterns
}

// ExtractProjects detects individual project entries in resume text. It
// locates the project/experience section by header, walks structured title
// lines, and falls back to bullet and tech-line splitting when the structured
// pass finds too few entries. Near-duplicate entries (one name containing the
// other) are removed.
func ExtractProjects(resumeText string, now time.Time) []Project {
	lines := strings.Split(resumeText, "\n")
	section := projectSection(lines)

	projects := extractStructured(section, now)
	if len(projects) == 0 {
		projects = extractByBullets(section, now)
	}
	if len(projects) < 3 {
		projects = append(projects, extractByTechLines(section, now)...)
	}

	return deduplicateProjects(projects)
}

// projectSection returns the text between the project section header and the
// next major section header. When no header is found the whole resume up to
// an education header is scanned.
func projectSection(lines []string) string {
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) >= 50 {
			continue
		}
		if sectionHeaderPattern.MatchString(trimmed) {
			start = i + 1
			break
		}
	}

	end := len(lines)
	if start == -1 {
		start = 0
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) < 50 && regexp.MustCompile(`(?i)^education\s*:?\s*$`).MatchString(trimmed) {
				end = i
				break
			}
		}
	} else {
		for i := start; i < len(lines); i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" || len(trimmed) >= 50 {
				continue
			}
			if sectionEndPattern.MatchString(trimmed) {
				end = i
				break
			}
		}
	}

	return strings.Join(lines[start:end], "\n")
}

func isProjectTitle(line string) bool {
	if !engagementTypePattern.MatchString(line) {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, verb := range descriptionVerbPrefixes {
		if strings.HasPrefix(lower, verb) {
			return false
		}
	}
	return true
}

// extractStructured splits the section at project title lines and parses
// each accumulated block.
func extractStructured(section string, now time.Time) []Project {
	var projects []Project
	var current []string

	flush := func() {
		if len(current) >= 1 {
			if p, ok := parseEntry(strings.Join(current, "\n"), now); ok {
				projects = append(projects, p)
			}
		}
		current = nil
	}

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if isProjectTitle(trimmed) {
			flush()
			current = []string{trimmed}
		} else if len(current) > 0 && trimmed != "" {
			current = append(current, line)
		}
	}
	flush()

	return projects
}

// extractByBullets splits on bullet markers and blank-line gaps.
func extractByBullets(section string, now time.Time) []Project {
	var projects []Project
	for _, entry := range bulletSplitPattern.Split(section, -1) {
		if p, ok := parseEntry(entry, now); ok {
			projects = append(projects, p)
		}
	}
	return projects
}

// extractByTechLines treats each "Tech:" line as the tail of one project and
// parses the text since the previous tech line.
func extractByTechLines(section string, now time.Time) []Project {
	matches := techLinePattern.FindAllStringIndex(section, -1)
	var projects []Project
	prevEnd := 0
	for _, m := range matches {
		end := m[1]
		if nl := strings.IndexByte(section[end:], '\n'); nl != -1 && nl < 200 {
			end += nl
		} else {
			end = len(section)
		}
		if p, ok := parseEntry(section[prevEnd:end], now); ok {
			projects = append(projects, p)
		}
		prevEnd = end
	}
	return projects
}

// parseEntry parses one project block. Entries under 20 characters are
// discarded as noise. A project with an unparsable date range still counts;
// it just contributes nothing to duration or overlap.
func parseEntry(entryText string, now time.Time) (Project, bool) {
	trimmed := strings.TrimSpace(entryText)
	if len(trimmed) < 20 {
		return Project{}, false
	}

	lines := nonEmptyLines(trimmed)
	name := "Unnamed Project"
	if len(lines) > 0 {
		name = lines[0]
	}
	if len(name) > 100 {
		name = name[:100]
	}

	// Dates usually sit on the title line; some resumes push the year to the
	// second line.
	dateText := lines[0]
	start, end, hasDates := extractDateRange(dateText, now)
	if !hasDates && len(lines) >= 2 {
		start, end, hasDates = extractDateRange(lines[0]+" "+lines[1], now)
	}

	duration := 0.0
	if hasDates {
		duration = rangeMonths(start, end)
	} else {
		duration = extractExplicitDuration(trimmed)
	}

	return Project{
		Name:           name,
		Start:          start,
		End:            end,
		HasDates:       hasDates,
		DurationMonths: duration,
		Technologies:   extractTechnologies(trimmed),
		Links:          extractLinks(trimmed),
	}, true
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func extractTechnologies(text string) []string {
	var techs []string
	for _, keyword := range technologyKeywords {
		if technologyPatterns[keyword].MatchString(text) {
			techs = append(techs, keyword)
		}
	}
	return techs
}

func extractLinks(text string) []string {
	seen := map[string]bool{}
	var links []string
	add := func(link string) {
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}
	for _, link := range urlPattern.FindAllString(text, -1) {
		add(strings.TrimRight(link, ".,;)"))
	}
	for _, repo := range githubRepoPattern.FindAllString(text, -1) {
		add("https://" + repo)
	}
	return links
}

// deduplicateProjects drops entries whose name contains, or is contained in,
// an earlier entry's name (case-insensitive). First occurrence wins.
func deduplicateProjects(projects []Project) []Project {
	if len(projects) <= 1 {
		return projects
	}
	var unique []Project
	var seenNames []string
	for _, p := range projects {
		nameLower := strings.ToLower(p.Name)
		duplicate := false
		for _, seen := range seenNames {
			if strings.Contains(seen, nameLower) || strings.Contains(nameLower, seen) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, p)
			seenNames = append(seenNames, nameLower)
		}
	}
	return unique
}
