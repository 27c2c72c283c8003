package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Analysis status values
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis represents a stored analysis record
type Analysis struct {
	ID            uuid.UUID               `json:"id"`
	Status        string                  `json:"status"`
	OverallScore  *float64                `json:"overall_match_score,omitempty"`
	Result        *types.AnalysisResult   `json:"result,omitempty"`
	Trace         *types.Trace            `json:"trace,omitempty"`
	Metadata      *types.AnalysisMetadata `json:"metadata,omitempty"`
	ErrorMessage  string                  `json:"error_message,omitempty"`
	EngineVersion string                  `json:"engine_version"`
	CreatedAt     time.Time               `json:"created_at"`
	CompletedAt   *time.Time              `json:"completed_at,omitempty"`
}

// AnalysisSummary is the listing view of an analysis (no result payload)
type AnalysisSummary struct {
	ID           uuid.UUID  `json:"id"`
	Status       string     `json:"status"`
	OverallScore *float64   `json:"overall_match_score,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
