package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/linkcheck"
	"github.com/jonathan/trust-evaluator/internal/types"
	"github.com/jonathan/trust-evaluator/internal/validation"
)

type fakeEmbedder struct {
	embedding []float32
	err       error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.embedding, f.err
}

func (f *fakeEmbedder) Close() error { return nil }

type fakeTrustModel struct {
	probability float64
	err         error
}

func (f *fakeTrustModel) Predict(_ context.Context, _ []float32, _ types.ResumeFeatures) (float64, error) {
	return f.probability, f.err
}

type fakeChecker struct {
	mu      sync.Mutex
	checked []string
	results map[linkcheck.Platform]*types.LinkCheckResult
}

func (f *fakeChecker) Check(_ context.Context, rawURL string, platform linkcheck.Platform) *types.LinkCheckResult {
	f.mu.Lock()
	f.checked = append(f.checked, rawURL)
	f.mu.Unlock()
	if result, ok := f.results[platform]; ok {
		return result
	}
	return &types.LinkCheckResult{URL: rawURL, WellFormed: true, Reachable: true}
}

const testResume = `Projects

E-commerce Platform (Freelance) | Jan 2022 - Jun 2022
Developed a storefront and payment integration using Go and PostgreSQL.
https://github.com/someone/shop

Analytics Dashboard (Client) | May 2022 - Dec 2022
Built reporting pipelines and dashboards using Go and PostgreSQL.
`

func testRequest() *types.EvaluateRequest {
	return &types.EvaluateRequest{
		ResumeText:   testResume,
		ClaimedLevel: "entry",
		GitHubURL:    "https://github.com/someone",
		LinkedInURL:  "https://linkedin.com/in/someone",
		PortfolioURL: "https://someone.dev",
	}
}

func newTestEvaluator(t *testing.T, opts Options) *Evaluator {
	t.Helper()
	if opts.Embedder == nil {
		opts.Embedder = &fakeEmbedder{embedding: make([]float32, 768)}
	}
	if opts.TrustModel == nil {
		opts.TrustModel = &fakeTrustModel{probability: 0.9}
	}
	if opts.Checker == nil {
		opts.Checker = &fakeChecker{}
	}
	e, err := New(opts)
	require.NoError(t, err)
	return e
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Embedder: &fakeEmbedder{}})
	assert.Error(t, err)

	_, err = New(Options{Embedder: &fakeEmbedder{}, TrustModel: &fakeTrustModel{}})
	assert.Error(t, err)
}

func TestEvaluateProducesCompleteResult(t *testing.T) {
	e := newTestEvaluator(t, Options{})
	result, err := e.Evaluate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, result.EvaluationID)
	assert.GreaterOrEqual(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, 100.0)
	assert.Equal(t, types.LanguageMaxPoints, result.Components.Language.MaxPoints)
	assert.Equal(t, types.PatternMaxPoints, result.Components.Pattern.MaxPoints)
	assert.Equal(t, types.ValidationMaxPoints, result.Components.Validation.MaxPoints)
	assert.NotNil(t, result.Flags)
	assert.NotEmpty(t, result.RiskTier)
	assert.NotEmpty(t, result.Recommendation)
}

func TestEvaluateDistinctIDs(t *testing.T) {
	e := newTestEvaluator(t, Options{})

	first, err := e.Evaluate(context.Background(), testRequest())
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.EvaluationID, second.EvaluationID)
	// Same input scores identically even though the IDs differ.
	assert.Equal(t, first.FinalScore, second.FinalScore)
	assert.Equal(t, first.Flags, second.Flags)
}

func TestEvaluateRejectsBadRequests(t *testing.T) {
	e := newTestEvaluator(t, Options{})

	req := testRequest()
	req.ResumeText = "  "
	_, err := e.Evaluate(context.Background(), req)
	var reqErr *validation.RequestError
	require.ErrorAs(t, err, &reqErr)

	req = testRequest()
	req.ClaimedLevel = "wizard"
	_, err = e.Evaluate(context.Background(), req)
	require.ErrorAs(t, err, &reqErr)
}

func TestEvaluateEmbedderFailureIsFatal(t *testing.T) {
	e := newTestEvaluator(t, Options{
		Embedder: &fakeEmbedder{err: errors.New("quota exhausted")},
	})

	_, err := e.Evaluate(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding failed")
}

func TestEvaluateTrustModelFailureIsFatal(t *testing.T) {
	e := newTestEvaluator(t, Options{
		TrustModel: &fakeTrustModel{err: errors.New("service down")},
	})

	_, err := e.Evaluate(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trust prediction failed")
}

func TestEvaluateMissingURLsSkipChecks(t *testing.T) {
	checker := &fakeChecker{}
	e := newTestEvaluator(t, Options{Checker: checker})

	req := testRequest()
	req.GitHubURL = ""
	req.LinkedInURL = ""
	req.PortfolioURL = ""

	result, err := e.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, checker.checked)

	var categories []string
	for _, f := range result.Flags {
		categories = append(categories, f.Category)
	}
	assert.Contains(t, categories, "github-missing")
	assert.Contains(t, categories, "linkedin-missing")
	assert.Contains(t, categories, "portfolio-missing")
}

func TestEvaluateNormalizesBareURLs(t *testing.T) {
	checker := &fakeChecker{}
	e := newTestEvaluator(t, Options{Checker: checker})

	req := testRequest()
	req.GitHubURL = "github.com/someone"
	req.LinkedInURL = ""
	req.PortfolioURL = ""

	_, err := e.Evaluate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, checker.checked, 1)
	assert.Equal(t, "https://github.com/someone", checker.checked[0])
}

func TestEvaluateFailedCheckStillScores(t *testing.T) {
	checker := &fakeChecker{
		results: map[linkcheck.Platform]*types.LinkCheckResult{
			linkcheck.PlatformGitHub: {URL: "https://github.com/someone", WellFormed: true, CheckFailed: true},
		},
	}
	e := newTestEvaluator(t, Options{Checker: checker})

	result, err := e.Evaluate(context.Background(), testRequest())
	require.NoError(t, err)

	var found bool
	for _, f := range result.Flags {
		if f.Category == "github-check-failed" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluateUsesConfiguredThresholds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LowRiskThreshold = 1
	cfg.MediumRiskThreshold = 0.5
	e := newTestEvaluator(t, Options{Config: &cfg})

	result, err := e.Evaluate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, types.RiskLow, result.RiskTier)
}
