package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/ontology"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// mockClient returns a canned reply and records the prompt it was given.
type mockClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (m *mockClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	m.lastPrompt = prompt
	return m.reply, m.err
}

func (m *mockClient) GetModel(tier llm.ModelTier) string { return "mock-model" }

func (m *mockClient) Close() error { return nil }

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		OverallMatchScore: 0.58,
		SkillAnalysis: types.SkillAnalysis{
			Matched:         []string{"Python"},
			MissingCritical: []string{"Docker"},
			MissingOptional: []string{},
		},
		ExperienceAnalysis: types.ExperienceAnalysis{RequiredYears: 5, ActualYears: 4, Gap: -1},
		Strengths:          []string{"Matched critical skill: Python"},
		Risks:              []string{"Missing critical skill: Docker"},
		Recommendations:    []string{"Add concrete evidence of Docker to the resume"},
	}
}

func goodReply() string {
	reply, _ := json.Marshal(types.Explanation{
		Summary:                   "A close match held back by one missing critical skill.",
		StrengthsExplained:        []string{"Python covers the core language requirement."},
		GapsExplained:             []string{"Docker is required but absent."},
		ExperienceCommentary:      "One year short of the stated requirement.",
		ActionableRecommendations: []string{"Add Docker projects to the resume."},
	})
	return string(reply)
}

func TestExplain_AcceptsValidReply(t *testing.T) {
	client := &mockClient{reply: goodReply()}
	explainer := New(client, ontology.Default())

	explanation, err := explainer.Explain(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Contains(t, explanation.Summary, "close match")

	// the prompt must carry the result facts, not a paraphrase
	assert.Contains(t, client.lastPrompt, `"overall_match_score": 0.58`)
}

func TestExplain_AcceptsFencedReply(t *testing.T) {
	client := &mockClient{reply: "```json\n" + goodReply() + "\n```"}
	explainer := New(client, ontology.Default())

	_, err := explainer.Explain(context.Background(), sampleResult())
	assert.NoError(t, err)
}

func TestExplain_RejectsSchemaViolation(t *testing.T) {
	client := &mockClient{reply: `{"summary": "missing everything else"}`}
	explainer := New(client, ontology.Default())

	_, err := explainer.Explain(context.Background(), sampleResult())
	require.Error(t, err)
	var guardrail *GuardrailError
	require.ErrorAs(t, err, &guardrail)
	assert.Contains(t, guardrail.Error(), "schema")
}

func TestExplain_RejectsExtraKeys(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(goodReply()), &doc))
	doc["revised_score"] = 0.95
	tampered, err := json.Marshal(doc)
	require.NoError(t, err)

	client := &mockClient{reply: string(tampered)}
	explainer := New(client, ontology.Default())

	_, err = explainer.Explain(context.Background(), sampleResult())
	require.Error(t, err, "a reply smuggling extra fields must be rejected")
}

func TestExplain_RejectsInventedSkill(t *testing.T) {
	explanation := types.Explanation{
		Summary:                   "Strong Kubernetes background.",
		StrengthsExplained:        []string{"Deep Kubernetes expertise stands out."},
		GapsExplained:             []string{},
		ExperienceCommentary:      "Experience is adequate.",
		ActionableRecommendations: []string{},
	}
	reply, _ := json.Marshal(explanation)

	client := &mockClient{reply: string(reply)}
	explainer := New(client, ontology.Default())

	_, err := explainer.Explain(context.Background(), sampleResult())
	require.Error(t, err)
	var guardrail *GuardrailError
	require.ErrorAs(t, err, &guardrail)
	assert.Contains(t, guardrail.Error(), "Kubernetes")
}

func TestExplain_AllowsSkillsFromResultFacts(t *testing.T) {
	// Docker is missing-critical: discussing it is allowed, it is a fact.
	explanation := types.Explanation{
		Summary:                   "Docker is the main gap.",
		StrengthsExplained:        []string{"Python is well evidenced."},
		GapsExplained:             []string{"Docker is required but not shown."},
		ExperienceCommentary:      "Close on experience.",
		ActionableRecommendations: []string{"Show Docker work."},
	}
	reply, _ := json.Marshal(explanation)

	client := &mockClient{reply: string(reply)}
	explainer := New(client, ontology.Default())

	_, err := explainer.Explain(context.Background(), sampleResult())
	assert.NoError(t, err)
}

func TestExplain_PropagatesClientError(t *testing.T) {
	client := &mockClient{err: fmt.Errorf("model unavailable")}
	explainer := New(client, ontology.Default())

	_, err := explainer.Explain(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestFallback_ConformsToSchema(t *testing.T) {
	fallback := Fallback()
	require.NotNil(t, fallback)
	assert.NotEmpty(t, fallback.Summary)
	assert.NotNil(t, fallback.StrengthsExplained)
	assert.NotNil(t, fallback.ActionableRecommendations)
}
