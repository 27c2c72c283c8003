// Package explain is the LLM copywriting layer. It receives a finished
// AnalysisResult read-only and returns prose; replies that fail schema
// validation or mention skills absent from the input facts are rejected, so
// no generative output can alter a score or invent a fact.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/ontology"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// GuardrailError reports an LLM reply that violated the explanation contract.
type GuardrailError struct {
	Message string
	Cause   error
}

func (e *GuardrailError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("explanation rejected: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("explanation rejected: %s", e.Message)
}

func (e *GuardrailError) Unwrap() error {
	return e.Cause
}

// Explainer generates validated prose explanations of analysis results.
type Explainer struct {
	client llm.Client
	ont    *ontology.Ontology
}

// New creates an explainer. The ontology is used by the fact guard to detect
// skills the model invented.
func New(client llm.Client, ont *ontology.Ontology) *Explainer {
	return &Explainer{client: client, ont: ont}
}

// Explain asks the model to narrate the result and validates the reply.
// Callers must treat an error as "no explanation available"; the analysis
// result itself is unaffected either way.
func (e *Explainer) Explain(ctx context.Context, result *types.AnalysisResult) (*types.Explanation, error) {
	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	template := prompts.MustGet("explain.json", "explain-analysis")
	prompt := prompts.Format(template, map[string]string{
		"AnalysisJSON": string(resultJSON),
	})

	reply, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("explanation generation failed: %w", err)
	}

	return e.validate([]byte(llm.CleanJSONBlock(reply)), result)
}

// validate applies the guardrails: schema conformance first, then the fact
// guard against invented skills.
func (e *Explainer) validate(raw []byte, result *types.AnalysisResult) (*types.Explanation, error) {
	if err := schemas.Validate(schemas.ExplanationSchema, raw); err != nil {
		return nil, &GuardrailError{Message: "reply does not match the explanation schema", Cause: err}
	}

	var explanation types.Explanation
	if err := json.Unmarshal(raw, &explanation); err != nil {
		return nil, &GuardrailError{Message: "reply is not valid JSON", Cause: err}
	}

	if invented := e.inventedSkill(&explanation, result); invented != "" {
		return nil, &GuardrailError{Message: fmt.Sprintf("reply mentions %q which is not in the input facts", invented)}
	}

	return &explanation, nil
}

// inventedSkill returns the first cataloged skill named in the explanation
// that does not appear in the result's matched or missing lists.
func (e *Explainer) inventedSkill(explanation *types.Explanation, result *types.AnalysisResult) string {
	allowed := make(map[string]bool)
	for _, list := range [][]string{
		result.SkillAnalysis.Matched,
		result.SkillAnalysis.MissingCritical,
		result.SkillAnalysis.MissingOptional,
	} {
		for _, name := range list {
			allowed[name] = true
		}
	}

	var prose []string
	prose = append(prose, explanation.Summary, explanation.ExperienceCommentary)
	prose = append(prose, explanation.StrengthsExplained...)
	prose = append(prose, explanation.GapsExplained...)
	prose = append(prose, explanation.ActionableRecommendations...)

	for _, entry := range e.ont.Entries() {
		name := entry.CanonicalName
		if len(name) < 2 || allowed[name] {
			continue
		}
		for _, text := range prose {
			if containsWord(text, name) {
				return name
			}
		}
	}
	return ""
}

// Fallback returns the deterministic explanation used when the model is
// unavailable or its reply was rejected.
func Fallback() *types.Explanation {
	return &types.Explanation{
		Summary:                   "Analysis complete. AI explanation unavailable; review the detailed skill and experience breakdown.",
		StrengthsExplained:        []string{},
		GapsExplained:             []string{},
		ExperienceCommentary:      "See the experience analysis figures.",
		ActionableRecommendations: []string{},
	}
}

// containsWord reports whether name occurs in text on word boundaries,
// case-sensitively. Canonical names are cased distinctively ("Go", "React"),
// which keeps ordinary prose from tripping the guard.
func containsWord(text, name string) bool {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], name)
		if idx < 0 {
			return false
		}
		idx += offset
		before := idx == 0 || !isWordByte(text[idx-1])
		afterIdx := idx + len(name)
		after := afterIdx == len(text) || !isWordByte(text[afterIdx])
		if before && after {
			return true
		}
		offset = idx + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
