package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"megraja/internal/core"
)

// handleListTransactions returns the snapshot sorted by date
// descending, optionally filtered by the q query parameter.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	snapshot := core.SortedByDateDescending(s.store.Transactions())
	if q := r.URL.Query().Get("q"); q != "" {
		snapshot = core.Search(snapshot, q)
	}
	if snapshot == nil {
		snapshot = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Draft validation lives here, at the entry point; the store
	// performs none.
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tx, err := s.store.AddTransaction(r.Context(), draft)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to add transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// handleDeleteTransaction deletes the transaction if present; deleting
// an unknown id succeeds the same way.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseCategoryType(raw string) (core.TransactionType, error) {
	typ := core.TransactionType(raw)
	if !typ.IsValid() {
		return "", errors.New("type must be income or expense")
	}
	return typ, nil
}
