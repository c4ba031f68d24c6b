// Package handler holds response helpers shared by all HTTP handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/middleware"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode response", "error", err)
		}
	}
}

// RespondError writes err as a JSON error response. Validation failures
// become a field-to-message map; everything else maps its domain code to
// an HTTP status with a single error object.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if fields := domain.GetValidationFields(err); fields != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
		return
	}

	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := StatusForCode(code)

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}

	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	RespondJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// StatusForCode maps domain error codes to HTTP status codes.
func StatusForCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v. An empty body leaves v at
// its zero value; malformed bodies come back as invalid-input domain
// errors so they reach the client as 400s.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return domain.Invalid("decode", "Invalid request body")
	}
	return nil
}
