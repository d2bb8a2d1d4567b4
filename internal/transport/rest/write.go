package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/picotan/picotan-backend/internal/domain"
	"github.com/picotan/picotan-backend/internal/service/write"
	"github.com/picotan/picotan-backend/internal/validate"
)

// writeService defines the write operations the handler dispatches to.
type writeService interface {
	Add(ctx context.Context, c domain.Collection, entry domain.Document) (string, error)
	Edit(ctx context.Context, c domain.Collection, id string, updateData domain.Document) (write.EditResult, error)
	Delete(ctx context.Context, c domain.Collection, id string) (int64, error)
}

// entryFetcher is the sliver of the read service the edit path needs to
// load the current document before re-validating the merge.
type entryFetcher interface {
	ByIDs(ctx context.Context, c domain.Collection, ids []string) ([]domain.Document, error)
}

// WriteHandler serves the write endpoint. The entry validator runs here,
// in front of the write service: adds are validated directly, edits are
// validated as the merge of the existing document and the update.
type WriteHandler struct {
	writes  writeService
	entries entryFetcher
	log     *slog.Logger
}

// NewWriteHandler creates a WriteHandler.
func NewWriteHandler(writes writeService, entries entryFetcher, logger *slog.Logger) *WriteHandler {
	return &WriteHandler{
		writes:  writes,
		entries: entries,
		log:     logger.With("handler", "write"),
	}
}

type writeRequest struct {
	Operation      string          `json:"operation"`
	CollectionName string          `json:"collectionName"`
	NewEntry       domain.Document `json:"newEntry,omitempty"`
	ID             string          `json:"id,omitempty"`
	UpdateData     domain.Document `json:"updateData,omitempty"`
}

// Write handles POST /api/write. Requires an authenticated request; the
// auth middleware enforces that before this runs.
func (h *WriteHandler) Write(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Operation {
	case "add":
		h.add(w, r, req)
	case "edit":
		h.edit(w, r, req)
	case "delete":
		h.delete(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, "invalid or missing operation type")
	}
}

func (h *WriteHandler) add(w http.ResponseWriter, r *http.Request, req writeRequest) {
	c := domain.Collection(req.CollectionName)

	if req.NewEntry == nil {
		respondError(w, fmt.Errorf("%w: newEntry", domain.ErrMissingParameter))
		return
	}

	prepared, err := validate.ValidateAndPrepare(c, req.NewEntry)
	if err != nil {
		h.logFailure(r, req, err)
		respondError(w, err)
		return
	}

	id, err := h.writes.Add(r.Context(), c, prepared)
	if err != nil {
		h.logFailure(r, req, err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "entry added successfully",
		"insertedId": id,
	})
}

func (h *WriteHandler) edit(w http.ResponseWriter, r *http.Request, req writeRequest) {
	c := domain.Collection(req.CollectionName)

	if req.ID == "" || req.UpdateData == nil {
		respondError(w, fmt.Errorf("%w: id and updateData", domain.ErrMissingParameter))
		return
	}

	existing, err := h.entries.ByIDs(r.Context(), c, []string{req.ID})
	if err != nil {
		h.logFailure(r, req, err)
		respondError(w, err)
		return
	}
	if existing[0] == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no document found with id %s", req.ID))
		return
	}

	// Partial updates are not validated in isolation; the whole merged
	// document must still satisfy the collection's rules.
	merged := existing[0].Clone()
	for k, v := range req.UpdateData {
		merged[k] = v
	}
	prepared, err := validate.ValidateAndPrepare(c, merged)
	if err != nil {
		h.logFailure(r, req, err)
		respondError(w, err)
		return
	}

	result, err := h.writes.Edit(r.Context(), c, req.ID, prepared)
	if err != nil {
		h.logFailure(r, req, err)
		respondError(w, err)
		return
	}
	if result.MatchedCount == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no document found with id %s", req.ID))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "entry updated successfully",
		"matchedCount":  result.MatchedCount,
		"modifiedCount": result.ModifiedCount,
	})
}

func (h *WriteHandler) delete(w http.ResponseWriter, r *http.Request, req writeRequest) {
	c := domain.Collection(req.CollectionName)

	deleted, err := h.writes.Delete(r.Context(), c, req.ID)
	if err != nil {
		h.logFailure(r, req, err)
		respondError(w, err)
		return
	}
	if deleted == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no document found with id %s", req.ID))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "entry deleted successfully",
		"deletedCount": deleted,
	})
}

func (h *WriteHandler) logFailure(r *http.Request, req writeRequest, err error) {
	h.log.ErrorContext(r.Context(), "write operation failed",
		slog.String("operation", req.Operation),
		slog.String("collection", req.CollectionName),
		slog.String("error", err.Error()),
	)
}
