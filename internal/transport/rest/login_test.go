package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picotan/picotan-backend/internal/domain"
)

type mockLoginService struct {
	LoginFunc func(ctx context.Context, username, password string) (string, error)
}

func (m *mockLoginService) Login(ctx context.Context, username, password string) (string, error) {
	return m.LoginFunc(ctx, username, password)
}

func TestLoginHandler_Success(t *testing.T) {
	t.Parallel()

	svc := &mockLoginService{
		LoginFunc: func(_ context.Context, username, password string) (string, error) {
			assert.Equal(t, "hanako", username)
			assert.Equal(t, "correct-horse", password)
			return "signed-token", nil
		},
	}
	h := NewLoginHandler(svc, slog.Default())

	rec := postJSON(t, h.Login, map[string]any{
		"username": "hanako",
		"password": "correct-horse",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "signed-token", resp["token"])
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := &mockLoginService{
		LoginFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
		},
	}
	h := NewLoginHandler(svc, slog.Default())

	rec := postJSON(t, h.Login, map[string]any{
		"username": "hanako",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")
}

func TestLoginHandler_ResponseDoesNotRevealFailureKind(t *testing.T) {
	t.Parallel()

	svc := &mockLoginService{
		LoginFunc: func(_ context.Context, username, _ string) (string, error) {
			if username == "nobody" {
				return "", fmt.Errorf("%w: unknown user", domain.ErrUnauthorized)
			}
			return "", fmt.Errorf("%w: wrong password", domain.ErrUnauthorized)
		},
	}
	h := NewLoginHandler(svc, slog.Default())

	recUnknown := postJSON(t, h.Login, map[string]any{"username": "nobody", "password": "x"})
	recWrongPw := postJSON(t, h.Login, map[string]any{"username": "hanako", "password": "x"})

	assert.Equal(t, recUnknown.Body.String(), recWrongPw.Body.String())
}

func TestLoginHandler_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewLoginHandler(&mockLoginService{}, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := NewLoginHandler(&mockLoginService{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
