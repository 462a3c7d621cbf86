package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/eliteshop/eliteshop/internal/domain"
)

// errorResponse is the JSON error envelope: {"error": "message"}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON renders v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// writeError maps a domain error code to an HTTP status and renders the
// user-facing message. Internal detail never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := statusFromCode(code)

	if status >= http.StatusInternalServerError {
		slog.Default().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"op", domain.ErrorOp(err),
			"error", err,
		)
	}

	writeJSON(w, status, errorResponse{Error: domain.ErrorMessage(err)})
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses a request body into v. An empty body is allowed so
// DELETE-style endpoints can take identity from cookies alone.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.Invalid("", "Invalid JSON body")
	}
	return nil
}
