package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{"job_url": "https://example.com/job", "verbose": true, "port": 9090}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"job":`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestValidate_MutuallyExclusiveJobSources(t *testing.T) {
	cfg := &Config{Job: "job.txt", JobURL: "https://example.com"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_MissingFiles(t *testing.T) {
	cfg := &Config{Resume: filepath.Join(t.TempDir(), "nope.txt")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 8080}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Resume: "mine.txt"}
	defaults := Config{Resume: "default.txt", Job: "job.txt", Port: 8080, Verbose: true}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "mine.txt", merged.Resume, "explicit value wins")
	assert.Equal(t, "job.txt", merged.Job, "empty value filled from defaults")
	assert.Equal(t, 8080, merged.Port)
	assert.True(t, merged.Verbose)
}
