package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/trust-evaluator/internal/observability"
	"github.com/jonathan/trust-evaluator/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	servePort       int
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the trust evaluation endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA portfolio sites (requires Chrome)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}

	evaluator, cleanup, err := buildEvaluator(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(evaluator, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintBanner(srv.Addr(), srv.AuthEnabled())

	return srv.Start()
}
