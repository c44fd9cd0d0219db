package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"megraja/internal/advisor"
	"megraja/internal/core"
)

type analyzeRequest struct {
	Transactions *[]core.Transaction `json:"transactions"`
}

// handleAnalyze builds the financial summary server-side from the
// submitted transactions and asks the advisor for advice. The caller
// never supplies totals of its own.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Transactions == nil {
		writeError(w, http.StatusBadRequest, "Invalid transactions data provided.")
		return
	}

	summary := advisor.BuildSummary(*req.Transactions)
	advice, err := s.advisor.Generate(r.Context(), summary)
	if err != nil {
		if errors.Is(err, advisor.ErrNotConfigured) {
			slog.ErrorContext(r.Context(), "Advisor is not configured", "error", err)
			writeError(w, http.StatusInternalServerError, "Server configuration error")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to generate advice",
			"malformed", errors.Is(err, advisor.ErrMalformedResponse), "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate advice")
		return
	}

	writeJSON(w, http.StatusOK, advice)
}
