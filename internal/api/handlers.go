package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/reeselc/centsible/internal/common"
	"github.com/reeselc/centsible/internal/engine"
	"github.com/reeselc/centsible/internal/model"
)

// learnRequest is one confirmed (description, category) pair.
type learnRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (r learnRequest) validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description must not be empty")
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("category must not be empty")
	}
	return nil
}

// handleCategories lists the reference categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.GetCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.Category{"categories": categories})
}

// handlePatterns lists the learned patterns.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.store.ListPatterns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list patterns", err)
		return
	}
	if patterns == nil {
		patterns = []model.PatternEntry{}
	}
	writeJSON(w, http.StatusOK, map[string][]model.PatternEntry{"patterns": patterns})
}

// handleProcess extracts transactions from the statement text in the
// request body, categorizes them and returns the routed result.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.extractor.Extract(r.Context(), r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to extract transactions", err)
		return
	}
	if len(transactions) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no transactions found in statement", common.ErrExtractionFailed)
		return
	}

	categorized, err := s.categorizer.CategorizeAll(r.Context(), transactions, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "categorization failed", err)
		return
	}

	result := engine.Route(categorized)

	statementsProcessed.Inc()
	transactionsCategorized.WithLabelValues("high_confidence").Add(float64(len(result.HighConfidence)))
	transactionsCategorized.WithLabelValues("needs_review").Add(float64(len(result.NeedsReview)))

	writeJSON(w, http.StatusOK, result)
}

// handleLearn saves a single confirmed categorization.
func (s *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid learn request", err)
		return
	}

	if err := s.store.SavePattern(r.Context(), req.Description, req.Category); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save pattern", err)
		return
	}

	patternsLearned.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// handleBatchLearn saves multiple confirmed categorizations. The whole
// batch is validated before anything is written, so an invalid entry
// never leaves the store partially updated.
func (s *Server) handleBatchLearn(w http.ResponseWriter, r *http.Request) {
	var reqs []learnRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	for i, req := range reqs {
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid learn request at index %d", i), err)
			return
		}
	}

	for _, req := range reqs {
		if err := s.store.SavePattern(r.Context(), req.Description, req.Category); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save pattern", err)
			return
		}
	}

	patternsLearned.Add(float64(len(reqs)))
	writeJSON(w, http.StatusOK, map[string]int{"learned": len(reqs)})
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response and logs the underlying error.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	slog.Error(message, "error", err, "status", status)
	writeJSON(w, status, map[string]string{"error": message})
}
