// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSections outputs the segmented sections of a document.
func (p *Printer) PrintSections(title string, sections []types.Section) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	for _, section := range sections {
		lineCount := section.EndLine - section.StartLine
		sb.WriteString(fmt.Sprintf("%-12s lines %d-%d (%d)\n",
			section.Label, section.StartLine, section.EndLine, lineCount))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs extracted skills with confidence and provenance.
func (p *Printer) PrintSkills(skills []types.SkillRecord) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills found: %d\n\n", len(skills)))

	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		skill := skills[i]
		sb.WriteString(fmt.Sprintf("%s (%.1f, %s)\n", skill.Name, skill.Confidence, skill.SourceSection))
		evidence := skill.Evidence
		if len(evidence) > 44 {
			evidence = evidence[:41] + "..."
		}
		sb.WriteString(fmt.Sprintf("  \"%s\"\n", evidence))
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(skills)-maxItemsToShow))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequirements outputs the JD requirements grouped by importance.
func (p *Printer) PrintRequirements(requirements []types.JDRequirement) {
	if len(requirements) == 0 {
		return
	}

	var critical, optional []string
	for _, req := range requirements {
		if req.Importance == types.ImportanceCritical {
			critical = append(critical, req.Name)
		} else {
			optional = append(optional, req.Name)
		}
	}

	var sb strings.Builder
	if len(critical) > 0 {
		sb.WriteString(fmt.Sprintf("Critical: %s\n", strings.Join(critical, ", ")))
	}
	if len(optional) > 0 {
		sb.WriteString(fmt.Sprintf("Optional: %s\n", strings.Join(optional, ", ")))
	}

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the score breakdown of a finished analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult, metadata *types.AnalysisMetadata) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall match:      %.2f\n", result.OverallMatchScore))
	sb.WriteString(fmt.Sprintf("Matched skills:     %d\n", len(result.SkillAnalysis.Matched)))
	sb.WriteString(fmt.Sprintf("Missing critical:   %d\n", len(result.SkillAnalysis.MissingCritical)))
	sb.WriteString(fmt.Sprintf("Missing optional:   %d\n", len(result.SkillAnalysis.MissingOptional)))
	sb.WriteString(fmt.Sprintf("Experience:         %.1f of %.1f years (gap %.1f)\n",
		result.ExperienceAnalysis.ActualYears,
		result.ExperienceAnalysis.RequiredYears,
		result.ExperienceAnalysis.Gap))
	if metadata != nil {
		sb.WriteString(fmt.Sprintf("Confidence:         %s", metadata.ConfidenceLevel))
	}

	p.printBox("ANALYSIS RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
