package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]string{"status": "ok"}, testLogger())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestError_DomainDetails(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, domainerrors.FieldValidation("name", "required"), testLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"code":"VALIDATION","message":"required","details":{"name":"required"}}`, w.Body.String())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"domain forbidden", domainerrors.Forbidden("nope"), http.StatusForbidden, "FORBIDDEN"},
		{"wrapped domain", errors.Join(errors.New("ctx"), domainerrors.Conflict("dup")), http.StatusConflict, "CONFLICT"},
		{"store not found", store.ErrRecipeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"store exists", store.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Code)
		})
	}
}

func TestFallbacks(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, testLogger())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Code)

	w = httptest.NewRecorder()
	MethodNotAllowed(w, testLogger())
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	TooManyRequests(w, testLogger())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, w).Code)
}
