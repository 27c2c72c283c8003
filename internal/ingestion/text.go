// Package ingestion turns raw document text into the canonical line sequence
// the rest of the pipeline operates on, and handles reading documents from
// files and URLs.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// bulletPrefixes are the list markers stripped from line starts.
var bulletPrefixes = []string{"•", "-", "*", "·", "‣", "◦"}

var multiSpace = regexp.MustCompile(` {2,}`)

// NormalizeLines converts raw text into the canonical line sequence: line
// endings unified, bullet glyphs stripped from line starts, Unicode
// whitespace collapsed to single ASCII spaces, and runs of blank lines
// collapsed to a single separator. Empty input yields an empty sequence.
func NormalizeLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	blankPending := false
	for _, line := range raw {
		cleaned := normalizeLine(line)
		if cleaned == "" {
			// Collapse any run of blanks into one separator, and drop
			// separators before the first content line.
			if len(lines) > 0 {
				blankPending = true
			}
			continue
		}
		if blankPending {
			lines = append(lines, "")
			blankPending = false
		}
		lines = append(lines, cleaned)
	}

	return lines
}

// CleanText is NormalizeLines rejoined into a single string, for callers that
// want cleaned prose rather than the line sequence.
func CleanText(text string) string {
	return strings.Join(NormalizeLines(text), "\n")
}

// normalizeLine cleans a single line: strips a leading bullet glyph, maps all
// Unicode whitespace to ASCII spaces, and collapses space runs.
func normalizeLine(line string) string {
	// Map every Unicode space (NBSP, tabs, ideographic space, ...) to a plain space.
	line = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, line)

	line = strings.TrimSpace(line)

	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
			break
		}
	}

	return multiSpace.ReplaceAllString(line, " ")
}

// ReadFile reads a raw document from disk. Normalization happens inside the
// engine so that stored inputs stay byte-identical to what was ingested.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}
