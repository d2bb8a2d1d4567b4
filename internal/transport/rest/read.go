package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/picotan/picotan-backend/internal/domain"
)

// readService defines the read operations the handler dispatches to.
type readService interface {
	ByIDs(ctx context.Context, c domain.Collection, ids []string) ([]domain.Document, error)
	ByIndex(ctx context.Context, c domain.Collection, indexValues []string) ([]domain.Document, error)
	BySearch(ctx context.Context, c domain.Collection, filters map[string]any) ([]domain.Document, error)
	ByFuzzyText(ctx context.Context, c domain.Collection, searchText, path string) ([]domain.Document, error)
}

// ReadHandler serves the read endpoint. All read operations share one
// POST envelope dispatched on the operation field.
type ReadHandler struct {
	svc readService
	log *slog.Logger
}

// NewReadHandler creates a ReadHandler.
func NewReadHandler(svc readService, logger *slog.Logger) *ReadHandler {
	return &ReadHandler{svc: svc, log: logger.With("handler", "read")}
}

type readRequest struct {
	Operation      string         `json:"operation"`
	CollectionName string         `json:"collectionName"`
	IDs            []string       `json:"ids,omitempty"`
	IndexValues    []string       `json:"indexValues,omitempty"`
	Filters        map[string]any `json:"filters,omitempty"`
	SearchText     string         `json:"searchText,omitempty"`
	Path           string         `json:"path,omitempty"`
}

// Read handles POST /api/read.
func (h *ReadHandler) Read(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req readRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := domain.Collection(req.CollectionName)

	var (
		docs []domain.Document
		err  error
	)
	switch req.Operation {
	case "byIds":
		docs, err = h.svc.ByIDs(r.Context(), c, req.IDs)
	case "byIndex":
		docs, err = h.svc.ByIndex(r.Context(), c, req.IndexValues)
	case "bySearch":
		docs, err = h.svc.BySearch(r.Context(), c, req.Filters)
	case "byFuzzyText":
		docs, err = h.svc.ByFuzzyText(r.Context(), c, req.SearchText, req.Path)
	default:
		writeError(w, http.StatusBadRequest, "invalid or missing operation type")
		return
	}

	if err != nil {
		h.log.ErrorContext(r.Context(), "read operation failed",
			slog.String("operation", req.Operation),
			slog.String("collection", req.CollectionName),
			slog.String("error", err.Error()),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}
