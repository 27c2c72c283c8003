// Package report packages computed facts into the canonical analysis output.
// The strengths, risks and recommendations it derives are templated from the
// same facts and rule-generated; free-form prose belongs to the external
// explanation layer, which may only ever read this output.
package report

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/match"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Confidence levels for the engine's self-assessment metadata.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Assemble builds the canonical AnalysisResult. All slices are non-nil so the
// JSON shape is identical for every input, including empty documents.
func Assemble(gap match.Gap, actual, required types.ExperienceFact, overall float64) *types.AnalysisResult {
	yearsGap := actual.Years - required.Years

	result := &types.AnalysisResult{
		OverallMatchScore: overall,
		SkillAnalysis: types.SkillAnalysis{
			Matched:         names(gap.Matched),
			MissingCritical: names(gap.MissingCritical),
			MissingOptional: names(gap.MissingOptional),
		},
		ExperienceAnalysis: types.ExperienceAnalysis{
			RequiredYears: required.Years,
			ActualYears:   actual.Years,
			Gap:           yearsGap,
		},
		Strengths:       []string{},
		Risks:           []string{},
		Recommendations: []string{},
	}

	for _, req := range gap.Matched {
		if req.Importance == types.ImportanceCritical {
			result.Strengths = append(result.Strengths, fmt.Sprintf("Matched critical skill: %s", req.Name))
		}
	}
	if yearsGap >= 0 && required.Years > 0 {
		result.Strengths = append(result.Strengths,
			fmt.Sprintf("Meets the experience requirement: %.1f years required, %.1f years found", required.Years, actual.Years))
	}

	for _, req := range gap.MissingCritical {
		result.Risks = append(result.Risks, fmt.Sprintf("Missing critical skill: %s", req.Name))
	}
	if yearsGap < 0 {
		result.Risks = append(result.Risks,
			fmt.Sprintf("Experience gap: %.1f years found, %.1f years required", actual.Years, required.Years))
	}

	for _, req := range gap.MissingCritical {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Add concrete evidence of %s to the resume", req.Name))
	}
	for _, req := range gap.MissingOptional {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Consider highlighting %s if applicable", req.Name))
	}
	if yearsGap < 0 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Document %.1f more years of relevant experience, including earlier roles with date ranges", -yearsGap))
	}

	return result
}

// Metadata derives the engine's confidence in its own extraction for this
// run. It travels alongside the result, never inside it.
func Metadata(result *types.AnalysisResult, trace *types.Trace) types.AnalysisMetadata {
	meta := types.AnalysisMetadata{
		ConfidenceLevel: ConfidenceHigh,
		Limitations:     []string{"Automated analysis based on keyword matching and heuristics."},
	}

	switch {
	case len(result.SkillAnalysis.Matched) == 0 && len(result.SkillAnalysis.MissingCritical) == 0 &&
		len(result.SkillAnalysis.MissingOptional) == 0 && len(trace.ResumeSkills) == 0:
		meta.ConfidenceLevel = ConfidenceLow
		meta.Limitations = append(meta.Limitations, "No cataloged skills detected in the resume or job description.")
	case trace.ResumeExperience.Derivation == types.DerivationNone && result.ExperienceAnalysis.RequiredYears > 0:
		meta.ConfidenceLevel = ConfidenceMedium
		meta.Limitations = append(meta.Limitations, "Could not confidently extract experience years from the resume.")
	}

	return meta
}

func names(reqs []types.JDRequirement) []string {
	out := make([]string, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, req.Name)
	}
	return out
}
