// Package skills scans segmented document text against the ontology and emits
// evidence-backed skill records and JD requirements.
package skills

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/ontology"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Confidence constants keyed by where the evidence was found. A skill used in
// a narrative sentence is stronger evidence than a bare list entry.
const (
	// ConfidenceNarrative applies to Experience-section evidence that reads
	// like a sentence (contains an action verb).
	ConfidenceNarrative = 0.9
	// ConfidenceListed applies to Skills-section entries and Experience
	// lines with no verb.
	ConfidenceListed = 0.5
	// ConfidenceMention applies to Summary, Education and Unknown sections.
	ConfidenceMention = 0.4
)

// actionVerbs marks an evidence line as narrative rather than a bare list.
var actionVerbs = map[string]struct{}{
	"built": {}, "build": {}, "developed": {}, "designed": {}, "implemented": {},
	"created": {}, "led": {}, "managed": {}, "maintained": {}, "migrated": {},
	"deployed": {}, "automated": {}, "improved": {}, "optimized": {}, "wrote": {},
	"delivered": {}, "architected": {}, "launched": {}, "scaled": {}, "reduced": {},
	"used": {}, "using": {}, "worked": {}, "integrated": {}, "shipped": {},
}

// occurrence is one raw alias hit before per-document merging.
type occurrence struct {
	entry    types.OntologyEntry
	evidence string
	section  types.SectionLabel
}

// Extract resolves every cataloged skill mentioned in the sections and merges
// them into one record per canonical skill, keeping the highest-confidence
// evidence. Terms the ontology does not know are silently dropped.
func Extract(sections []types.Section, ont *ontology.Ontology) []types.SkillRecord {
	var records []types.SkillRecord
	index := make(map[string]int)

	for _, occ := range scan(sections, ont) {
		confidence := confidenceFor(occ.section, occ.evidence)
		i, seen := index[occ.entry.ID]
		if !seen {
			index[occ.entry.ID] = len(records)
			records = append(records, types.SkillRecord{
				SkillID:       occ.entry.ID,
				Name:          occ.entry.CanonicalName,
				Category:      occ.entry.Category,
				Confidence:    confidence,
				Evidence:      occ.evidence,
				SourceSection: occ.section,
			})
			continue
		}
		// Keep the maximum, never average: the strongest evidence must not
		// be diluted by weaker mentions elsewhere.
		if confidence > records[i].Confidence {
			records[i].Confidence = confidence
			records[i].Evidence = occ.evidence
			records[i].SourceSection = occ.section
		}
	}

	return records
}

// optionalCues downgrade a JD mention to an optional requirement.
var optionalCues = []string{"nice to have", "plus", "bonus", "preferred", "good to have", "familiarity with"}

// ExtractRequirements resolves cataloged skills mentioned in JD sections and
// classifies their importance from cue phrases on the evidence line. Without
// an optional cue a requirement defaults to critical. When a skill appears
// with both importances, critical wins.
func ExtractRequirements(sections []types.Section, ont *ontology.Ontology) []types.JDRequirement {
	var reqs []types.JDRequirement
	index := make(map[string]int)

	for _, occ := range scan(sections, ont) {
		importance := importanceFor(occ.evidence)
		i, seen := index[occ.entry.ID]
		if !seen {
			index[occ.entry.ID] = len(reqs)
			reqs = append(reqs, types.JDRequirement{
				SkillID:    occ.entry.ID,
				Name:       occ.entry.CanonicalName,
				Importance: importance,
				Evidence:   occ.evidence,
			})
			continue
		}
		if importance == types.ImportanceCritical && reqs[i].Importance == types.ImportanceOptional {
			reqs[i].Importance = types.ImportanceCritical
			reqs[i].Evidence = occ.evidence
		}
	}

	return reqs
}

// scan finds every alias occurrence line by line, matching greedily longest
// alias first so "Machine Learning" is never split into "Machine" plus
// "Learning". Matched character spans are consumed and cannot match again.
func scan(sections []types.Section, ont *ontology.Ontology) []occurrence {
	var found []occurrence
	aliases := ont.Aliases()

	for _, section := range sections {
		if section.Text == "" {
			continue
		}
		for _, line := range strings.Split(section.Text, "\n") {
			lower := strings.ToLower(line)
			consumed := make([]bool, len(lower))
			for _, alias := range aliases {
				for _, idx := range wordMatches(lower, alias.Text, consumed) {
					for j := idx; j < idx+len(alias.Text); j++ {
						consumed[j] = true
					}
					entry, ok := ont.Entry(alias.SkillID)
					if !ok {
						continue
					}
					found = append(found, occurrence{
						entry:    entry,
						evidence: line,
						section:  section.Label,
					})
				}
			}
		}
	}

	return found
}

// wordMatches returns the start offsets of word-boundary occurrences of alias
// in line that do not overlap already-consumed spans.
func wordMatches(line, alias string, consumed []bool) []int {
	var matches []int
	for offset := 0; offset+len(alias) <= len(line); {
		idx := strings.Index(line[offset:], alias)
		if idx < 0 {
			break
		}
		idx += offset
		end := idx + len(alias)
		boundaryBefore := idx == 0 || !isWordByte(line[idx-1])
		boundaryAfter := end == len(line) || !isWordByte(line[end])
		if boundaryBefore && boundaryAfter && !overlapsConsumed(consumed, idx, end) {
			matches = append(matches, idx)
		}
		offset = idx + 1
	}
	return matches
}

func overlapsConsumed(consumed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// confidenceFor applies the fixed rule table keyed by evidence location.
func confidenceFor(section types.SectionLabel, evidence string) float64 {
	switch section {
	case types.SectionExperience:
		if hasActionVerb(evidence) {
			return ConfidenceNarrative
		}
		return ConfidenceListed
	case types.SectionSkills:
		return ConfidenceListed
	default:
		return ConfidenceMention
	}
}

// hasActionVerb reports whether a line reads like a narrative sentence.
func hasActionVerb(line string) bool {
	for _, word := range strings.Fields(strings.ToLower(line)) {
		word = strings.Trim(word, ".,;:()")
		if _, ok := actionVerbs[word]; ok {
			return true
		}
	}
	return false
}

// importanceFor classifies a JD evidence line. Optional cues win over the
// critical default because "nice to have" phrasing is an explicit signal.
func importanceFor(evidence string) types.Importance {
	lower := strings.ToLower(evidence)
	for _, cue := range optionalCues {
		if strings.Contains(lower, cue) {
			return types.ImportanceOptional
		}
	}
	return types.ImportanceCritical
}
