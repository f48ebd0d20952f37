package response

import (
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"message": "test"}
	JSON(w, http.StatusOK, data, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Error)
}

func TestJSON_NilLogger(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()

	Created(w, map[string]string{"id": "1"}, discardLogger())

	assert.Equal(t, http.StatusCreated, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestTotalCount(t *testing.T) {
	w := httptest.NewRecorder()

	TotalCount(w, 42)
	Success(w, []string{"a"}, discardLogger())

	assert.Equal(t, "42", w.Header().Get("X-Total-Count"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestError_Generic(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusInternalServerError, "something went wrong", discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "something went wrong", result.Error)
}

func TestHandleError_DomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domainerrors.NotFound("book not found"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", domainerrors.Validation("Days must be at least 1"), http.StatusBadRequest, "VALIDATION"},
		{"exhausted", domainerrors.Exhausted("no copies available"), http.StatusBadRequest, "EXHAUSTED"},
		{"already returned", domainerrors.AlreadyReturned("loan already closed"), http.StatusBadRequest, "ALREADY_RETURNED"},
		{"blocked", domainerrors.Blocked("author has books"), http.StatusBadRequest, "BLOCKED"},
		{"conflict", domainerrors.Conflict("author already exists"), http.StatusConflict, "CONFLICT"},
		{"invalid credentials", domainerrors.InvalidCredentials("invalid credentials"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"forbidden", domainerrors.Forbidden("access denied"), http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			HandleError(w, tt.err, discardLogger())

			assert.Equal(t, tt.wantStatus, w.Code)

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)

			assert.False(t, result.Success)
			assert.Equal(t, tt.wantCode, result.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()

	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"days": "days must be 1 or greater",
	})
	HandleError(w, err, discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Details)

	details, ok := result.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "days must be 1 or greater", details["days"])
}

func TestHandleError_WrappedDomainError(t *testing.T) {
	w := httptest.NewRecorder()

	wrapped := domainerrors.NotFound("author not found").WithCause(errors.New("sql: no rows"))
	HandleError(w, wrapped, discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleError_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, errors.New("disk on fire"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var result Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	// Internal details must not leak to clients.
	assert.Equal(t, "internal server error", result.Error)
}

func TestStatusCodeBoundary(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		expectedSuccess bool
	}{
		{"200 OK", 200, true},
		{"201 Created", 201, true},
		{"399 Custom Success", 399, true},
		{"400 Bad Request", 400, false},
		{"500 Internal Server Error", 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSON(w, tt.status, nil, discardLogger())

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedSuccess, result.Success)
		})
	}
}
