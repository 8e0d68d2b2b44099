package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/trust-evaluator/internal/extraction"
	"github.com/jonathan/trust-evaluator/internal/observability"
	"github.com/jonathan/trust-evaluator/internal/schemas"
	"github.com/jonathan/trust-evaluator/internal/types"
	"github.com/spf13/cobra"
)

var (
	evalConfigPath   string
	evalResumePath   string
	evalRequestPath  string
	evalLevel        string
	evalGitHubURL    string
	evalLinkedInURL  string
	evalPortfolioURL string
	evalJSONOutput   bool
	evalUseBrowser   bool
	evalVerbose      bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single resume from the command line",
	Long: `Run one trust evaluation without starting the server.

The resume can be supplied as a plain text file with --resume plus flags,
or as a full request JSON file with --request.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "Path to config.json file")
	evaluateCmd.Flags().StringVarP(&evalResumePath, "resume", "r", "", "Path to resume text file (mutually exclusive with --request)")
	evaluateCmd.Flags().StringVar(&evalRequestPath, "request", "", "Path to request JSON file (mutually exclusive with --resume)")
	evaluateCmd.Flags().StringVarP(&evalLevel, "level", "l", "", "Claimed experience level: entry, mid, senior, or expert")
	evaluateCmd.Flags().StringVar(&evalGitHubURL, "github", "", "GitHub profile URL")
	evaluateCmd.Flags().StringVar(&evalLinkedInURL, "linkedin", "", "LinkedIn profile URL")
	evaluateCmd.Flags().StringVar(&evalPortfolioURL, "portfolio", "", "Portfolio URL")
	evaluateCmd.Flags().BoolVar(&evalJSONOutput, "json", false, "Print the raw evaluation result as JSON")
	evaluateCmd.Flags().BoolVar(&evalUseBrowser, "use-browser", false, "Use headless browser for SPA portfolio sites (requires Chrome)")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	req, err := buildRequest()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(evalConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = evalUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = evalVerbose
	}

	ctx := context.Background()

	evaluator, cleanup, err := buildEvaluator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := evaluator.Evaluate(ctx, req)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evalJSONOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintFeatures(extraction.Extract(req.ResumeText))
	printer.PrintEvaluation(result)
	return nil
}

// buildRequest assembles the evaluation request from either a request JSON
// file (validated against the wire schema) or the individual flags.
func buildRequest() (*types.EvaluateRequest, error) {
	if evalRequestPath != "" && evalResumePath != "" {
		return nil, fmt.Errorf("--resume and --request are mutually exclusive")
	}

	if evalRequestPath != "" {
		data, err := os.ReadFile(evalRequestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read request file: %w", err)
		}
		if err := schemas.ValidateEvaluateRequest(data); err != nil {
			return nil, fmt.Errorf("invalid request file: %w", err)
		}
		var req types.EvaluateRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse request file: %w", err)
		}
		return &req, nil
	}

	if evalResumePath == "" {
		return nil, fmt.Errorf("either --resume or --request is required")
	}
	if evalLevel == "" {
		return nil, fmt.Errorf("--level is required with --resume")
	}

	data, err := os.ReadFile(evalResumePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	return &types.EvaluateRequest{
		ResumeText:   string(data),
		ClaimedLevel: evalLevel,
		GitHubURL:    evalGitHubURL,
		LinkedInURL:  evalLinkedInURL,
		PortfolioURL: evalPortfolioURL,
	}, nil
}
