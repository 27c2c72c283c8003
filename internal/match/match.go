// Package match computes the fit score from already-extracted facts. It is
// pure arithmetic: no extraction, no I/O, and no generative input of any kind
// can reach this package.
package match

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Scoring constants. Named so the formula's provenance is auditable and
// swappable without touching extraction code.
const (
	// CriticalWeight and OptionalWeight set the 2:1 importance ratio in the
	// skill score.
	CriticalWeight = 2.0
	OptionalWeight = 1.0

	// ConfidenceGate is the strict lower bound a skill record must exceed to
	// count as matched. Mentioning is not knowing.
	ConfidenceGate = 0.6

	// SkillSplit and ExperienceSplit weight the two sub-scores in the final
	// score.
	SkillSplit      = 0.70
	ExperienceSplit = 0.30
)

// Experience step-function scores by gap band.
const (
	experienceFull  = 1.0
	experienceClose = 0.8
	experienceShort = 0.5
)

// Gap partitions the JD requirements by whether the resume satisfied them.
// Every point lost from the maximum skill score is traceable to an entry in
// one of the missing lists.
type Gap struct {
	Matched         []types.JDRequirement
	MissingCritical []types.JDRequirement
	MissingOptional []types.JDRequirement
}

// EvaluateSkillGap checks each JD requirement against the resume's skill
// records. A requirement is satisfied only by a record whose confidence
// strictly exceeds the gate; weaker records stay in the record set for audit
// but never reach the matched list.
func EvaluateSkillGap(records []types.SkillRecord, requirements []types.JDRequirement) Gap {
	qualifying := make(map[string]bool, len(records))
	for _, record := range records {
		if record.Confidence > ConfidenceGate {
			qualifying[record.SkillID] = true
		}
	}

	gap := Gap{
		Matched:         []types.JDRequirement{},
		MissingCritical: []types.JDRequirement{},
		MissingOptional: []types.JDRequirement{},
	}
	for _, req := range requirements {
		switch {
		case qualifying[req.SkillID]:
			gap.Matched = append(gap.Matched, req)
		case req.Importance == types.ImportanceCritical:
			gap.MissingCritical = append(gap.MissingCritical, req)
		default:
			gap.MissingOptional = append(gap.MissingOptional, req)
		}
	}
	return gap
}

// SkillScore computes the weighted fraction of JD requirements satisfied.
// A JD with no requirements scores 1.0: nothing demanded means trivially
// satisfied, and the explicit policy avoids dividing by zero.
func SkillScore(gap Gap) float64 {
	var matchedCritical, matchedOptional float64
	for _, req := range gap.Matched {
		if req.Importance == types.ImportanceCritical {
			matchedCritical++
		} else {
			matchedOptional++
		}
	}
	totalCritical := matchedCritical + float64(len(gap.MissingCritical))
	totalOptional := matchedOptional + float64(len(gap.MissingOptional))

	denominator := totalCritical*CriticalWeight + totalOptional*OptionalWeight
	if denominator == 0 {
		return 1.0
	}
	return (matchedCritical*CriticalWeight + matchedOptional*OptionalWeight) / denominator
}

// ExperienceScore maps the signed years gap (actual minus required) onto the
// step function: meeting the requirement scores full, missing by up to a year
// scores 0.8, anything worse scores 0.5.
func ExperienceScore(gap float64) float64 {
	switch {
	case gap >= 0:
		return experienceFull
	case gap >= -1:
		return experienceClose
	default:
		return experienceShort
	}
}

// OverallScore combines the sub-scores, clamps to [0,1] and rounds to two
// decimals. Rounding happens exactly once, here at the boundary, so the
// computation stays reproducible bit for bit.
func OverallScore(skillScore, experienceScore float64) float64 {
	overall := skillScore*SkillSplit + experienceScore*ExperienceSplit
	overall = math.Max(0, math.Min(1, overall))
	return math.Round(overall*100) / 100
}
