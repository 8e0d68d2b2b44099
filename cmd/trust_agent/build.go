package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/linkcheck"
	"github.com/jonathan/trust-evaluator/internal/model"
	"github.com/jonathan/trust-evaluator/internal/pipeline"
)

// loadConfig reads the optional config file, fills defaults, and resolves
// credentials from the environment when the file leaves them unset.
func loadConfig(path string) (*config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	merged := cfg.MergeWithDefaults(config.DefaultConfig())

	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if merged.InferenceURL == "" {
		merged.InferenceURL = os.Getenv("INFERENCE_URL")
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return &merged, nil
}

// buildEvaluator wires the evaluation pipeline from configuration: the
// Gemini embedder, the trust model (hosted inference service when
// configured, deterministic heuristic otherwise), and a cached link checker.
func buildEvaluator(ctx context.Context, cfg *config.Config) (*pipeline.Evaluator, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	embedder, err := model.NewGeminiEmbedder(ctx, cfg.APIKey, model.DefaultEmbeddingModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	var trustModel model.TrustModel
	if cfg.InferenceURL != "" {
		trustModel = model.NewHTTPTrustModel(cfg.InferenceURL, 0)
	} else {
		trustModel = model.HeuristicTrustModel{}
	}

	checker := linkcheck.NewCachedChecker(
		linkcheck.NewHTTPChecker(&linkcheck.Options{
			Timeout:        time.Duration(cfg.LinkTimeoutSeconds) * time.Second,
			ActivityWindow: time.Duration(cfg.GitHubActivityMonths) * 30 * 24 * time.Hour,
			UseBrowser:     cfg.UseBrowser,
		}),
		time.Duration(cfg.LinkCacheTTLMinutes)*time.Minute,
	)

	evaluator, err := pipeline.New(pipeline.Options{
		Embedder:   embedder,
		TrustModel: trustModel,
		Checker:    checker,
		Config:     cfg,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		_ = embedder.Close()
		return nil, nil, fmt.Errorf("failed to create evaluator: %w", err)
	}

	cleanup := func() {
		_ = embedder.Close()
	}

	return evaluator, cleanup, nil
}
