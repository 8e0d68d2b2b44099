// Package pipeline provides the high-level orchestration for a trust
// evaluation: feature extraction, model scoring, and link validation.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/extraction"
	"github.com/jonathan/trust-evaluator/internal/linkcheck"
	"github.com/jonathan/trust-evaluator/internal/model"
	"github.com/jonathan/trust-evaluator/internal/scoring"
	"github.com/jonathan/trust-evaluator/internal/types"
	"github.com/jonathan/trust-evaluator/internal/validation"
)

// Evaluator runs the full evaluation pipeline. All collaborators are
// injected so tests can substitute fakes for the network-facing parts.
type Evaluator struct {
	embedder   model.Embedder
	trustModel model.TrustModel
	checker    linkcheck.Checker
	validator  *validation.Validator
	weights    model.ConfidenceWeights
	thresholds scoring.Thresholds
	cfg        *config.Config
	verbose    bool
}

// Options holds the collaborators and settings for an Evaluator.
type Options struct {
	Embedder   model.Embedder
	TrustModel model.TrustModel
	Checker    linkcheck.Checker
	Config     *config.Config
	Weights    *model.ConfidenceWeights
	Verbose    bool
}

// New creates an Evaluator from options. Config defaults are applied when
// absent; the embedder, trust model, and checker are required.
func New(opts Options) (*Evaluator, error) {
	if opts.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if opts.TrustModel == nil {
		return nil, fmt.Errorf("trust model is required")
	}
	if opts.Checker == nil {
		return nil, fmt.Errorf("link checker is required")
	}
	cfg := opts.Config
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}
	weights := model.DefaultConfidenceWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}

	return &Evaluator{
		embedder:   opts.Embedder,
		trustModel: opts.TrustModel,
		checker:    opts.Checker,
		validator:  validation.NewValidator(cfg),
		weights:    weights,
		thresholds: scoring.Thresholds{Low: cfg.LowRiskThreshold, Medium: cfg.MediumRiskThreshold},
		cfg:        cfg,
		verbose:    opts.Verbose,
	}, nil
}

// modelBranchResult holds the outputs from the model scoring branch.
type modelBranchResult struct {
	language types.ComponentScore
	pattern  types.ComponentScore
}

// Evaluate runs the pipeline for one request. Model failures are fatal;
// link check failures degrade into validation flags instead.
func (e *Evaluator) Evaluate(ctx context.Context, req *types.EvaluateRequest) (*types.EvaluationResult, error) {
	if err := validation.CheckRequest(req, e.cfg); err != nil {
		return nil, err
	}
	if check := validation.CheckBasicHeuristics(req.ResumeText); !check.IsSafe {
		validation.LogInjectionWarning(check, "resume text")
	}

	level, err := types.ParseExperienceLevel(req.ClaimedLevel)
	if err != nil {
		return nil, &validation.RequestError{Message: "unrecognized experience level", Cause: err}
	}

	features := extraction.Extract(req.ResumeText)
	if e.verbose {
		log.Printf("[VERBOSE] Extracted features: %d projects, %.1f years", features.ProjectCount, features.TotalExperienceYears)
	}

	g, gCtx := errgroup.WithContext(ctx)

	var modelResult modelBranchResult
	var githubResult, linkedinResult, portfolioResult *types.LinkCheckResult

	// Model branch: embed, predict, score language and pattern.
	g.Go(func() error {
		result, err := e.runModelBranch(gCtx, req.ResumeText, features)
		if err != nil {
			return fmt.Errorf("model branch failed: %w", err)
		}
		modelResult = *result
		return nil
	})

	// Link branch: the three checks are independent of each other too.
	g.Go(func() error {
		githubResult = e.checkLink(gCtx, req.GitHubURL, linkcheck.PlatformGitHub)
		return nil
	})
	g.Go(func() error {
		linkedinResult = e.checkLink(gCtx, req.LinkedInURL, linkcheck.PlatformLinkedIn)
		return nil
	})
	g.Go(func() error {
		portfolioResult = e.checkLink(gCtx, req.PortfolioURL, linkcheck.PlatformPortfolio)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	validationScore := e.validator.Score(githubResult, linkedinResult, portfolioResult, level, features)

	result := scoring.AggregateWith(e.thresholds, modelResult.language, modelResult.pattern, validationScore)
	result.EvaluationID = uuid.New().String()

	if e.verbose {
		log.Printf("[VERBOSE] Evaluation %s: score %.1f, tier %s", result.EvaluationID, result.FinalScore, result.RiskTier)
	}
	return &result, nil
}

func (e *Evaluator) runModelBranch(ctx context.Context, resumeText string, features types.ResumeFeatures) (*modelBranchResult, error) {
	embedding, err := e.embedder.Embed(ctx, validation.QuoteExternalContent(resumeText))
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	confidence := model.Confidence(resumeText, embedding, e.weights)

	trustProbability, err := e.trustModel.Predict(ctx, embedding, features)
	if err != nil {
		return nil, fmt.Errorf("trust prediction failed: %w", err)
	}

	if e.verbose {
		log.Printf("[VERBOSE] Model branch: confidence %.3f, trust probability %.3f", confidence, trustProbability)
	}

	return &modelBranchResult{
		language: scoring.ScoreLanguage(confidence, resumeText),
		pattern:  scoring.ScorePattern(trustProbability, features),
	}, nil
}

// checkLink verifies one URL, returning nil when the URL was not provided.
func (e *Evaluator) checkLink(ctx context.Context, rawURL string, platform linkcheck.Platform) *types.LinkCheckResult {
	normalized := linkcheck.NormalizeURL(rawURL)
	if normalized == "" {
		return nil
	}
	return e.checker.Check(ctx, normalized, platform)
}
