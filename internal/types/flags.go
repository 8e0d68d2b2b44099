// Package types provides type definitions for structured data used throughout the trust-evaluator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FlagSource identifies which evaluation component emitted a flag.
type FlagSource string

const (
	// SourceLanguage marks flags from the language-quality analysis.
	SourceLanguage FlagSource = "language"
	// SourcePattern marks flags from the project-history pattern analysis.
	SourcePattern FlagSource = "pattern"
	// SourceValidation marks flags from link and experience validation.
	SourceValidation FlagSource = "validation"
)

// Severity grades how strongly a flag should weigh on a reviewer's attention.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Flag is a single structured observation attached to a component score.
// Flags are informational: they never alter the numeric score outside the
// emitting component's own formula.
type Flag struct {
	Source   FlagSource `json:"source"`
	Category string     `json:"category"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
}
