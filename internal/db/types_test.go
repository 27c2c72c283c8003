package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusConstants(t *testing.T) {
	statuses := []string{StatusProcessing, StatusCompleted, StatusFailed}
	for _, s := range statuses {
		assert.NotEmpty(t, s, "status constant should not be empty")
	}
	assert.Equal(t, "processing", StatusProcessing)
	assert.Equal(t, "completed", StatusCompleted)
	assert.Equal(t, "failed", StatusFailed)
}

func TestAnalysisType(t *testing.T) {
	id := uuid.New()
	a := Analysis{
		ID:            id,
		Status:        StatusProcessing,
		EngineVersion: "1.0.0",
		CreatedAt:     time.Now(),
	}

	assert.Equal(t, id, a.ID)
	assert.Equal(t, StatusProcessing, a.Status)
	assert.Nil(t, a.OverallScore)
	assert.Nil(t, a.Result)
	assert.Nil(t, a.CompletedAt)
}

func TestAnalysisSummaryJSON(t *testing.T) {
	score := 0.86
	s := AnalysisSummary{
		ID:           uuid.New(),
		Status:       StatusCompleted,
		OverallScore: &score,
		CreatedAt:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "completed", out["status"])
	assert.InDelta(t, 0.86, out["overall_match_score"], 1e-9)
	assert.NotContains(t, out, "completed_at")
}
