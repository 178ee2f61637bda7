package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

func handleError(t *testing.T, err error, exposeDetail bool) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), exposeDetail)(err, c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid input", domain.InvalidInput("title is required"), http.StatusBadRequest, "title is required"},
		{"unauthenticated", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", domain.ErrNoteNotFound, http.StatusNotFound, "note not found"},
		{"conflict", domain.ErrUserExists, http.StatusConflict, "user with this email already exists"},
		{"unavailable", domain.ErrAIDisabled, http.StatusServiceUnavailable, "ai assistant is not configured"},
		{"upstream", domain.Upstream("ai request failed", errors.New("quota")), http.StatusBadGateway, "ai request failed"},
		{"wrapped", fmt.Errorf("handler: %w", domain.ErrNoteNotFound), http.StatusNotFound, "note not found"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "access denied"), http.StatusUnauthorized, "access denied"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := handleError(t, tt.err, false)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, body.Error)
			assert.Empty(t, body.Detail)
		})
	}
}

func TestHTTPErrorHandler_ExposeDetail(t *testing.T) {
	code, body := handleError(t, errors.New("connection reset"), true)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, "connection reset", body.Detail)

	_, body = handleError(t, domain.ErrNoteNotFound, true)
	assert.Empty(t, body.Detail)
}
