package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/picotan/picotan-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the error taxonomy onto HTTP statuses:
// parameter-shape and validation failures are client errors, store
// failures mean the backing database is unavailable.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingParameter),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrUnknownCollection),
		errors.Is(err, domain.ErrUnsupportedCollection),
		errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an error response. Validation failures carry the
// full violation list so a form can show every problem at once.
func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, status, map[string]any{
			"error":   verr.Error(),
			"details": verr.Messages(),
		})
		return
	}

	if status == http.StatusInternalServerError {
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
