package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/folio/backend/internal/service"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON reads r's body into dst. On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// fallback is the error code used for unclassified failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		verr *service.ValidationError
		nf   *service.NotFoundError
		serr *service.SubmissionError
		merr *service.MutationError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation_failed",
			"fields": verr.Fields,
		})
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, "daily_limit_reached")
	case errors.Is(err, service.ErrIntakeDisabled):
		writeError(w, http.StatusForbidden, "advice_disabled")
	case errors.As(err, &serr):
		slog.ErrorContext(r.Context(), "submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
	case errors.As(err, &merr):
		slog.ErrorContext(r.Context(), "mutation failed", "op", merr.Op, "kind", merr.Kind, "id", merr.ID, "error", merr.Err)
		writeError(w, http.StatusInternalServerError, merr.Op+"_failed")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// pagination reads limit/offset query params; the service clamps them.
func pagination(r *http.Request) (limit, offset int) {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil {
			offset = n
		}
	}
	return limit, offset
}
