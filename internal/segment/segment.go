// Package segment partitions a normalized line sequence into labeled
// document sections using header-pattern matching.
package segment

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// headerPattern pairs a lowercase header keyword with the label it opens.
// Evaluation is data driven: every keyword contained in a candidate header
// line is found, and the longest match wins, so "technical skills" beats
// "skills" and "work experience" beats "experience".
type headerPattern struct {
	keyword string
	label   types.SectionLabel
}

var headerPatterns = []headerPattern{
	{"professional experience", types.SectionExperience},
	{"employment history", types.SectionExperience},
	{"work experience", types.SectionExperience},
	{"work history", types.SectionExperience},
	{"experience", types.SectionExperience},
	{"technical skills", types.SectionSkills},
	{"core competencies", types.SectionSkills},
	{"technologies", types.SectionSkills},
	{"skills", types.SectionSkills},
	{"academic background", types.SectionEducation},
	{"education", types.SectionEducation},
	{"academic", types.SectionEducation},
	{"professional summary", types.SectionSummary},
	{"summary", types.SectionSummary},
	{"objective", types.SectionSummary},
	{"profile", types.SectionSummary},
	{"about me", types.SectionSummary},
}

// maxHeaderWords bounds how long a line can be and still count as a section
// header. Longer lines are prose that merely mentions a keyword.
const maxHeaderWords = 5

// Lines assigns every normalized line to exactly one section. Lines before
// the first recognized header form a Summary section; a header line opens a
// new section and is excluded from its body; a repeated header of the same
// label simply opens a further section of that label. The returned spans
// cover the full sequence in document order with no overlaps.
func Lines(lines []string) []types.Section {
	if len(lines) == 0 {
		return []types.Section{}
	}

	var sections []types.Section
	start := 0
	label := types.SectionSummary
	headerAt := -1 // line index of the header that opened the current section

	flush := func(end int) {
		if end <= start {
			return
		}
		sections = append(sections, types.Section{
			Label:     label,
			StartLine: start,
			EndLine:   end,
			Text:      bodyText(lines, start, end, headerAt),
		})
	}

	for i, line := range lines {
		matched, ok := MatchHeader(line)
		if !ok {
			continue
		}
		flush(i)
		start = i
		label = matched
		headerAt = i
	}
	flush(len(lines))

	return sections
}

// MatchHeader reports whether a line is a section header and which label it
// opens. Ties between patterns are broken by the longest keyword match.
func MatchHeader(line string) (types.SectionLabel, bool) {
	candidate := strings.ToLower(strings.TrimSpace(line))
	candidate = strings.TrimRight(candidate, ":")
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || len(strings.Fields(candidate)) > maxHeaderWords {
		return "", false
	}

	best := ""
	var bestLabel types.SectionLabel
	for _, p := range headerPatterns {
		if containsWord(candidate, p.keyword) && len(p.keyword) > len(best) {
			best = p.keyword
			bestLabel = p.label
		}
	}
	if best == "" {
		return "", false
	}
	return bestLabel, true
}

// bodyText joins the section's lines, skipping the header line itself.
func bodyText(lines []string, start, end, headerAt int) string {
	var sb strings.Builder
	for i := start; i < end; i++ {
		if i == headerAt {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(lines[i])
	}
	return sb.String()
}

// containsWord reports whether sub occurs in s on word boundaries.
func containsWord(s, sub string) bool {
	for offset := 0; ; {
		idx := strings.Index(s[offset:], sub)
		if idx < 0 {
			return false
		}
		idx += offset
		before := idx == 0 || !isWordByte(s[idx-1])
		afterIdx := idx + len(sub)
		after := afterIdx == len(s) || !isWordByte(s[afterIdx])
		if before && after {
			return true
		}
		offset = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
