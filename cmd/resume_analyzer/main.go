// Package main provides the entry point for the resume analyzer CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Deterministic resume / job description matching",
	Long:  "Resume Analyzer scores a resume against a job description with a deterministic, auditable engine. An optional AI layer explains the result in prose but never changes a number.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
