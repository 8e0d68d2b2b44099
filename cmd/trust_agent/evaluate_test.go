package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetEvaluateFlags clears the package-level flag variables between tests.
func resetEvaluateFlags(t *testing.T) {
	t.Helper()
	evalResumePath = ""
	evalRequestPath = ""
	evalLevel = ""
	evalGitHubURL = ""
	evalLinkedInURL = ""
	evalPortfolioURL = ""
	t.Cleanup(func() {
		evalResumePath = ""
		evalRequestPath = ""
		evalLevel = ""
		evalGitHubURL = ""
		evalLinkedInURL = ""
		evalPortfolioURL = ""
	})
}

func TestBuildRequest_FromFlags(t *testing.T) {
	resetEvaluateFlags(t)

	resumePath := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Built a payments service in Go."), 0o644))

	evalResumePath = resumePath
	evalLevel = "senior"
	evalGitHubURL = "https://github.com/someone"

	req, err := buildRequest()
	require.NoError(t, err)

	assert.Equal(t, "Built a payments service in Go.", req.ResumeText)
	assert.Equal(t, "senior", req.ClaimedLevel)
	assert.Equal(t, "https://github.com/someone", req.GitHubURL)
	assert.Empty(t, req.LinkedInURL)
}

func TestBuildRequest_FromRequestFile(t *testing.T) {
	resetEvaluateFlags(t)

	requestPath := filepath.Join(t.TempDir(), "request.json")
	body := `{"resume_text": "Shipped two services.", "claimed_level": "mid"}`
	require.NoError(t, os.WriteFile(requestPath, []byte(body), 0o644))

	evalRequestPath = requestPath

	req, err := buildRequest()
	require.NoError(t, err)

	assert.Equal(t, "Shipped two services.", req.ResumeText)
	assert.Equal(t, "mid", req.ClaimedLevel)
}

func TestBuildRequest_RequestFileFailsSchema(t *testing.T) {
	resetEvaluateFlags(t)

	requestPath := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(requestPath, []byte(`{"claimed_level": "wizard"}`), 0o644))

	evalRequestPath = requestPath

	_, err := buildRequest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request file")
}

func TestBuildRequest_MutuallyExclusiveInputs(t *testing.T) {
	resetEvaluateFlags(t)

	evalResumePath = "resume.txt"
	evalRequestPath = "request.json"

	_, err := buildRequest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestBuildRequest_RequiresInput(t *testing.T) {
	resetEvaluateFlags(t)

	_, err := buildRequest()
	require.Error(t, err)
}

func TestBuildRequest_RequiresLevelWithResume(t *testing.T) {
	resetEvaluateFlags(t)

	resumePath := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("text"), 0o644))

	evalResumePath = resumePath

	_, err := buildRequest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--level")
}
