package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/engine"
	"github.com/jonathan/resume-analyzer/internal/explain"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// analysisTimeout bounds one background analysis including JD fetch and
// explanation generation.
const analysisTimeout = 2 * time.Minute

// handleCreateAnalysis accepts an analysis request and runs it in the
// background. Responds 202 with the analysis ID; clients poll GET
// /analyses/{id} for the result.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New()
	if err := s.db.CreateAnalysis(r.Context(), id, engine.Version); err != nil {
		log.Printf("Error creating analysis record: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create analysis")
		return
	}

	go s.runAnalysis(id, req)

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"analysis_id": id.String(),
		"status":      "processing",
	})
}

// runAnalysis executes one analysis end to end. A failure at any stage marks
// the record failed; an explanation failure does not, the result stands on
// its own.
func (s *Server) runAnalysis(id uuid.UUID, req types.AnalyzeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.fail(ctx, id, fmt.Sprintf("analysis queue timeout: %v", err))
		return
	}
	defer s.sem.Release(1)

	jdText := req.JDText
	if req.JDURL != "" {
		fetched, err := ingestion.FetchJobDescription(ctx, req.JDURL, s.useBrowser, s.verbose)
		if err != nil {
			s.fail(ctx, id, fmt.Sprintf("failed to fetch job description: %v", err))
			return
		}
		jdText = fetched
	}

	result, trace := s.engine.Analyze(req.ResumeText, jdText)

	if err := s.db.CompleteAnalysis(ctx, id, result, trace); err != nil {
		log.Printf("Error completing analysis %s: %v", id, err)
		return
	}

	if s.explainer == nil {
		return
	}

	explanation, err := s.explainer.Explain(ctx, result)
	fallback := false
	if err != nil {
		log.Printf("Explanation for analysis %s rejected, using fallback: %v", id, err)
		explanation = explain.Fallback()
		fallback = true
	}
	if err := s.db.SaveExplanation(ctx, id, explanation, fallback); err != nil {
		log.Printf("Error saving explanation for analysis %s: %v", id, err)
	}
}

func (s *Server) fail(ctx context.Context, id uuid.UUID, message string) {
	if err := s.db.FailAnalysis(ctx, id, message); err != nil {
		log.Printf("Error marking analysis %s failed: %v", id, err)
	}
}

// handleGetAnalysis returns one analysis record including the result when
// completed.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	analysis, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		log.Printf("Error getting analysis %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}
	if analysis == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	// Metadata is derived, not stored
	if analysis.Result != nil && analysis.Trace != nil {
		metadata := report.Metadata(analysis.Result, analysis.Trace)
		analysis.Metadata = &metadata
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleListAnalyses returns recent analyses, newest first. Supports a
// ?limit= query parameter (default 50).
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 500 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	summaries, err := s.db.ListAnalyses(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing analyses: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": summaries})
}

// handleGetExplanation returns the stored explanation for an analysis.
func (s *Server) handleGetExplanation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	explanation, fallback, err := s.db.GetExplanation(r.Context(), id)
	if err != nil {
		log.Printf("Error getting explanation %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get explanation")
		return
	}
	if explanation == nil {
		s.errorResponse(w, http.StatusNotFound, "Explanation not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"explanation": explanation,
		"fallback":    fallback,
	})
}
