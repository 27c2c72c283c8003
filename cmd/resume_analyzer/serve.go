package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/server"
)

var (
	servePort       int
	serveOntology   string
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for running analyses.

Requires DATABASE_URL, JWT_SECRET, OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH
environment variables. GEMINI_API_KEY is optional; without it, analyses are
served without AI explanations.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveOntology, "ontology", "", "Path to a skills ontology JSON file (default: built-in catalog)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Ontology:    serveOntology,
		UseBrowser:  serveUseBrowser,
		Verbose:     serveVerbose,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
