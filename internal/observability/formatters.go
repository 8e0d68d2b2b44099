// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/trust-evaluator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxFlagsToShow is the default number of flags to display
	maxFlagsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBanner outputs a startup banner for the server.
func (p *Printer) PrintBanner(addr string, authEnabled bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Listening on:  %s\n", addr))
	sb.WriteString(fmt.Sprintf("Auth:          %v", authEnabled))
	p.printBox("TRUST EVALUATOR", sb.String())
}

// PrintFeatures outputs the extracted resume features.
func (p *Printer) PrintFeatures(features types.ResumeFeatures) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Projects:          %d\n", features.ProjectCount))
	sb.WriteString(fmt.Sprintf("Experience:        %.1f years\n", features.TotalExperienceYears))
	sb.WriteString(fmt.Sprintf("Avg duration:      %.1f months\n", features.AverageProjectDurationMonths))
	sb.WriteString(fmt.Sprintf("Overlapping:       %d\n", features.OverlappingProjectCount))
	sb.WriteString(fmt.Sprintf("Tech consistency:  %.2f\n", features.TechnologyConsistency))
	sb.WriteString(fmt.Sprintf("Links verified:    %.0f%%", features.LinkVerificationRatio*100))

	p.printBox("EXTRACTED FEATURES", sb.String())
}

// PrintEvaluation outputs a human-readable summary of an evaluation result.
func (p *Printer) PrintEvaluation(result *types.EvaluationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Final score:     %.1f / 100\n", result.FinalScore))
	sb.WriteString(fmt.Sprintf("Risk tier:       %s\n", result.RiskTier))
	sb.WriteString(fmt.Sprintf("Recommendation:  %s\n", result.Recommendation))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Language:    %5.1f / %.0f\n", result.Components.Language.Points, result.Components.Language.MaxPoints))
	sb.WriteString(fmt.Sprintf("Pattern:     %5.1f / %.0f\n", result.Components.Pattern.Points, result.Components.Pattern.MaxPoints))
	sb.WriteString(fmt.Sprintf("Validation:  %5.1f / %.0f\n", result.Components.Validation.Points, result.Components.Validation.MaxPoints))

	if len(result.Flags) > 0 {
		sb.WriteString("\nFlags:\n")
		count := min(len(result.Flags), maxFlagsToShow)
		for i := 0; i < count; i++ {
			flag := result.Flags[i]
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", strings.ToUpper(string(flag.Severity)), flag.Message))
		}
		if len(result.Flags) > maxFlagsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Flags)-maxFlagsToShow))
		}
	}

	p.printBox("TRUST EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}
