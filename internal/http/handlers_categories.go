package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"megraja/internal/ledger"
)

type categoryRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type categoryListResponse struct {
	Type       string   `json:"type"`
	Categories []string `json:"categories"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	typ, err := parseCategoryType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	names := s.store.Categories(typ)
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, categoryListResponse{Type: string(typ), Categories: names})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	typ, err := parseCategoryType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.AddCategory(r.Context(), typ, req.Name); err != nil {
		if errors.Is(err, ledger.ErrDuplicateCategory) {
			writeError(w, http.StatusConflict, "category already exists")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to add category", "type", typ, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save category")
		return
	}

	trimmed := strings.TrimSpace(req.Name)
	if trimmed == "" {
		// Blank names are ignored rather than rejected.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, categoryRequest{Type: string(typ), Name: trimmed})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	typ, err := parseCategoryType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := r.URL.Query().Get("name")
	if err := s.store.RemoveCategory(r.Context(), typ, name); err != nil {
		slog.ErrorContext(r.Context(), "Failed to remove category", "type", typ, "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
