package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/picotan/picotan-backend/pkg/furigana"
)

// annotator fills furigana readings for kanji-bearing text.
type annotator interface {
	Annotate(text string) []furigana.Segment
}

// FuriganaHandler serves the furigana suggestion endpoint used by the
// entry forms to pre-fill readings.
type FuriganaHandler struct {
	annotator annotator
	log       *slog.Logger
}

// NewFuriganaHandler creates a FuriganaHandler.
func NewFuriganaHandler(a annotator, logger *slog.Logger) *FuriganaHandler {
	return &FuriganaHandler{annotator: a, log: logger.With("handler", "furigana")}
}

type furiganaRequest struct {
	Text string `json:"text"`
}

type furiganaResponse struct {
	Segments []furigana.Segment `json:"segments"`
	Furigana string             `json:"furigana"`
}

// Annotate handles POST /api/furigana.
func (h *FuriganaHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req furiganaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	segments := h.annotator.Annotate(req.Text)
	writeJSON(w, http.StatusOK, furiganaResponse{
		Segments: segments,
		Furigana: furigana.Build(segments),
	})
}
