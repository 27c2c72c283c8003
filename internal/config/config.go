// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Paths
	Resume   string `json:"resume,omitempty"`   // Path to resume text file
	Job      string `json:"job,omitempty"`      // Path to job posting text file
	JobURL   string `json:"job_url,omitempty"`  // URL to fetch job posting from
	Ontology string `json:"ontology,omitempty"` // Path to a skills ontology JSON file (empty = built-in catalog)

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key (explanations only)
	Explain    bool   `json:"explain,omitempty"`     // Generate an AI explanation alongside the result
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port (default 8080)
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required-field checks are left to CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	for name, path := range map[string]string{"resume": c.Resume, "job": c.Job, "ontology": c.Ontology} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Ontology == "" {
		result.Ontology = defaults.Ontology
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: true wins (flags can only turn behavior on)
	result.Explain = result.Explain || defaults.Explain
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
