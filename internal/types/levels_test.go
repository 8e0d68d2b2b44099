// Package types provides type definitions for structured data used throughout the trust-evaluator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceLevel_CanonicalNames(t *testing.T) {
	for _, want := range AllExperienceLevels() {
		got, err := ParseExperienceLevel(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseExperienceLevel_CaseAndWhitespace(t *testing.T) {
	got, err := ParseExperienceLevel("  Senior ")
	require.NoError(t, err)
	assert.Equal(t, LevelSenior, got)

	got, err = ParseExperienceLevel("EXPERT")
	require.NoError(t, err)
	assert.Equal(t, LevelExpert, got)
}

func TestParseExperienceLevel_Synonyms(t *testing.T) {
	got, err := ParseExperienceLevel("junior")
	require.NoError(t, err)
	assert.Equal(t, LevelEntry, got)

	got, err = ParseExperienceLevel("intermediate")
	require.NoError(t, err)
	assert.Equal(t, LevelMid, got)
}

func TestParseExperienceLevel_Unknown(t *testing.T) {
	_, err := ParseExperienceLevel("wizard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown experience level")
}

func TestExperienceLevel_Title(t *testing.T) {
	assert.Equal(t, "Senior", LevelSenior.Title())
	assert.Equal(t, "Entry", LevelEntry.Title())
	assert.Equal(t, "", ExperienceLevel("").Title())
}
