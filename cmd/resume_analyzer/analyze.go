package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/engine"
	"github.com/jonathan/resume-analyzer/internal/explain"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/ontology"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Scores a resume against a job description and prints the result as JSON.

The score is computed deterministically: the same inputs always produce the
same output. With --explain, an AI-generated prose explanation is attached;
the explanation never changes the scores.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeOntology   string
	analyzeExplain    bool
	analyzeTrace      bool
	analyzeUseBrowser bool
	analyzeVerbose    bool
	analyzeAPIKey     string
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume text file")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCommand.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCommand.Flags().StringVar(&analyzeOntology, "ontology", "", "Path to a skills ontology JSON file (default: built-in catalog)")
	analyzeCommand.Flags().BoolVar(&analyzeExplain, "explain", false, "Attach an AI-generated explanation (requires API key)")
	analyzeCommand.Flags().BoolVar(&analyzeTrace, "trace", false, "Include the extraction trace in the output")
	analyzeCommand.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = analyzeJobURL
	}
	if cmd.Flags().Changed("ontology") {
		cfg.Ontology = analyzeOntology
	}
	if cmd.Flags().Changed("explain") {
		cfg.Explain = analyzeExplain
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	// Step 3: Validate the merged configuration
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("one of --job or --job-url is required")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}
	if cfg.Explain && cfg.APIKey == "" {
		return fmt.Errorf("--explain requires an API key (--api-key or GEMINI_API_KEY)")
	}

	// Step 4: Read inputs
	resumeText, err := ingestion.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	var jdText string
	if cfg.JobURL != "" {
		fetchCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		jdText, err = ingestion.FetchJobDescription(fetchCtx, cfg.JobURL, cfg.UseBrowser, cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to fetch job description: %w", err)
		}
	} else {
		jdText, err = ingestion.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
	}

	// Step 5: Load the ontology and run the engine
	ont := ontology.Default()
	if cfg.Ontology != "" {
		ont, err = ontology.LoadFile(cfg.Ontology)
		if err != nil {
			return fmt.Errorf("failed to load ontology: %w", err)
		}
	}

	eng := engine.New(ont)
	result, trace := eng.Analyze(resumeText, jdText)
	metadata := report.Metadata(result, trace)

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintSections("RESUME SECTIONS", trace.ResumeSections)
		printer.PrintSections("JOB SECTIONS", trace.JDSections)
		printer.PrintSkills(trace.ResumeSkills)
		printer.PrintRequirements(trace.JDRequirements)
		printer.PrintAnalysis(result, &metadata)
	}

	// Step 6: Optional AI explanation
	var explanation *types.Explanation
	if cfg.Explain {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()

		explanation, err = explain.New(client, ont).Explain(ctx, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: explanation rejected, using fallback: %v\n", err)
			explanation = explain.Fallback()
		}
	}

	// Step 7: Emit the output, checked against the result schema
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := schemas.Validate(schemas.AnalysisResultSchema, resultJSON); err != nil {
		return fmt.Errorf("result failed schema validation: %w", err)
	}

	output := map[string]any{
		"result":   result,
		"metadata": metadata,
	}
	if analyzeTrace {
		output["trace"] = trace
	}
	if explanation != nil {
		output["explanation"] = explanation
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
