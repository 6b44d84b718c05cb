// Package response writes JSON bodies for handlers that run outside the
// huma pipeline, such as router fallbacks and chi middleware.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// ErrorBody is the error shape shared with huma operations.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// Error writes a domain error with its mapped status.
func Error(w http.ResponseWriter, err *domainerrors.Error, logger *slog.Logger) {
	JSON(w, err.HTTPStatus(), ErrorBody{
		Code:    string(err.Code),
		Message: err.Message,
		Details: err.Details,
	}, logger)
}

// NotFound writes a 404 for unrouted paths.
func NotFound(w http.ResponseWriter, logger *slog.Logger) {
	Error(w, domainerrors.NotFound("resource not found"), logger)
}

// MethodNotAllowed writes a 405.
func MethodNotAllowed(w http.ResponseWriter, logger *slog.Logger) {
	JSON(w, http.StatusMethodNotAllowed, ErrorBody{
		Code:    "METHOD_NOT_ALLOWED",
		Message: "method not allowed",
	}, logger)
}

// TooManyRequests writes a 429.
func TooManyRequests(w http.ResponseWriter, logger *slog.Logger) {
	Error(w, domainerrors.ErrRateLimited, logger)
}

// HandleError writes an appropriate response for any error.
// Domain and store errors keep their status, unknown errors become 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		Error(w, domainErr, logger)
		return
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		JSON(w, storeErr.HTTPCode(), ErrorBody{
			Code:    codeForStatus(storeErr.HTTPCode()),
			Message: storeErr.Message,
		}, logger)
		return
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	Error(w, domainerrors.Internal("internal server error"), logger)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeAlreadyExists)
	case http.StatusBadRequest:
		return string(domainerrors.CodeValidation)
	default:
		return string(domainerrors.CodeInternal)
	}
}
