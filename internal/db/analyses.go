package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// -----------------------------------------------------------------------------
// Analysis Methods
// -----------------------------------------------------------------------------

// CreateAnalysis inserts a new analysis record in the processing state
func (db *DB) CreateAnalysis(ctx context.Context, id uuid.UUID, engineVersion string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO analyses (id, status, engine_version)
		 VALUES ($1, $2, $3)`,
		id, StatusProcessing, engineVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// CompleteAnalysis stores the result and marks the analysis completed
func (db *DB) CompleteAnalysis(ctx context.Context, id uuid.UUID, result *types.AnalysisResult, trace *types.Trace) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE analyses
		 SET status = $1, overall_match_score = $2, result = $3, trace = $4, completed_at = NOW()
		 WHERE id = $5`,
		StatusCompleted, result.OverallMatchScore, resultJSON, traceJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete analysis: %w", err)
	}
	return nil
}

// FailAnalysis marks the analysis failed with an error message
func (db *DB) FailAnalysis(ctx context.Context, id uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE analyses SET status = $1, error_message = $2, completed_at = NOW() WHERE id = $3`,
		StatusFailed, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark analysis failed: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID. Returns nil when not found.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var resultJSON, traceJSON []byte
	var errorMessage *string

	err := db.pool.QueryRow(ctx,
		`SELECT id, status, overall_match_score, result, trace, error_message,
		        engine_version, created_at, completed_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Status, &a.OverallScore, &resultJSON, &traceJSON,
		&errorMessage, &a.EngineVersion, &a.CreatedAt, &a.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if errorMessage != nil {
		a.ErrorMessage = *errorMessage
	}

	// Parse JSONB fields
	if resultJSON != nil {
		a.Result = &types.AnalysisResult{}
		if err := json.Unmarshal(resultJSON, a.Result); err != nil {
			return nil, fmt.Errorf("failed to parse stored result: %w", err)
		}
	}
	if traceJSON != nil {
		a.Trace = &types.Trace{}
		if err := json.Unmarshal(traceJSON, a.Trace); err != nil {
			return nil, fmt.Errorf("failed to parse stored trace: %w", err)
		}
	}

	return &a, nil
}

// ListAnalyses returns recent analyses, newest first
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, status, overall_match_score, created_at, completed_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Status, &s.OverallScore, &s.CreatedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analysis rows: %w", err)
	}

	return summaries, nil
}

// SaveExplanation stores the explanation for a completed analysis
func (db *DB) SaveExplanation(ctx context.Context, analysisID uuid.UUID, explanation *types.Explanation, fallback bool) error {
	explanationJSON, err := json.Marshal(explanation)
	if err != nil {
		return fmt.Errorf("failed to marshal explanation: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analysis_explanations (analysis_id, explanation, fallback)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (analysis_id) DO UPDATE SET explanation = $2, fallback = $3, created_at = NOW()`,
		analysisID, explanationJSON, fallback,
	)
	if err != nil {
		return fmt.Errorf("failed to save explanation: %w", err)
	}
	return nil
}

// GetExplanation retrieves the explanation for an analysis. Returns nil when
// none has been stored.
func (db *DB) GetExplanation(ctx context.Context, analysisID uuid.UUID) (*types.Explanation, bool, error) {
	var explanationJSON []byte
	var fallback bool

	err := db.pool.QueryRow(ctx,
		`SELECT explanation, fallback FROM analysis_explanations WHERE analysis_id = $1`,
		analysisID,
	).Scan(&explanationJSON, &fallback)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get explanation: %w", err)
	}

	var explanation types.Explanation
	if err := json.Unmarshal(explanationJSON, &explanation); err != nil {
		return nil, false, fmt.Errorf("failed to parse stored explanation: %w", err)
	}

	return &explanation, fallback, nil
}
