package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLines_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeLines(""))
	assert.Empty(t, NormalizeLines("   \n\t\n  "))
}

func TestNormalizeLines_CRLFAndBullets(t *testing.T) {
	input := "Skills:\r\n• Python\r\n- Docker\r\n* Kubernetes\r\n"
	lines := NormalizeLines(input)
	assert.Equal(t, []string{"Skills:", "Python", "Docker", "Kubernetes"}, lines)
}

func TestNormalizeLines_CollapsesWhitespace(t *testing.T) {
	input := "worked   with Python\tand   Go"
	lines := NormalizeLines(input)
	require.Len(t, lines, 1)
	assert.Equal(t, "worked with Python and Go", lines[0])
}

func TestNormalizeLines_BlankRunsCollapse(t *testing.T) {
	input := "\n\nSummary\n\n\n\nExperience\nline\n\n"
	lines := NormalizeLines(input)
	assert.Equal(t, []string{"Summary", "", "Experience", "line"}, lines)
}

func TestNormalizeLines_OnlyLeadingBulletStripped(t *testing.T) {
	lines := NormalizeLines("- built - and - shipped")
	require.Len(t, lines, 1)
	assert.Equal(t, "built - and - shipped", lines[0])
}

func TestNormalizeLines_Idempotent(t *testing.T) {
	input := "• Summary\r\n\r\n\r\nworked   with Python\n"
	once := NormalizeLines(input)
	twice := NormalizeLines(CleanText(input))
	assert.Equal(t, once, twice)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\n\nb", CleanText("a\n\n\n\nb"))
}

func TestReadFile_ReturnsRawContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	raw := "Name\r\n\r\n• bullet   line\r\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, content, "ingestion must not normalize; the engine does")
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
