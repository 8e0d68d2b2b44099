// Package main provides the entry point for the Trust Evaluator service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trust_agent",
	Short: "Freelancer Trust Evaluator",
	Long:  "Trust Evaluator scores freelancer resumes for credibility by combining language analysis, project-history pattern analysis, and profile link validation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
