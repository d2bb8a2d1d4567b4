package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// loginService defines the minimal interface needed by LoginHandler.
type loginService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginHandler serves the login endpoint.
type LoginHandler struct {
	svc loginService
	log *slog.Logger
}

// NewLoginHandler creates a LoginHandler.
func NewLoginHandler(svc loginService, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{svc: svc, log: logger.With("handler", "login")}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// Do not leak whether the username exists.
		writeError(w, statusForError(err), "invalid username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
