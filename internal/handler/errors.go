package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// errInvalidPayload rejects request bodies missing required top-level fields.
var errInvalidPayload = errors.New("invalid payload")

// errorDetail is the machine-readable part of an error response body.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the JSON body returned for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error body with the given status and code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondError maps a service error to an HTTP response.
// Sentinel errors become their documented 4xx statuses; anything else is an
// infrastructure failure: logged and reported as an opaque 500.
// notFound names what was being looked up (e.g. "trip not found") because the
// handler is the layer that knows.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		detail := domain.Detail(err)
		if detail == "" {
			detail = "invalid request"
		}
		writeError(w, http.StatusBadRequest, "validation_error", detail)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrUnknownActivity):
		writeError(w, http.StatusUnprocessableEntity, "unknown_activity", "unknown activity id: "+domain.Detail(err))
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "already_registered", "email or phone already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	default:
		slog.ErrorContext(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
