package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
	"github.com/gatormarket/backend/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the service error taxonomy onto HTTP: invalid
// input -> 400, not-found sentinels -> 404, conflict -> 409, anything else
// -> 500 with the given fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, models.NewFieldErrorResponse(verr.Field, verr.Message))
	case errors.Is(err, services.ErrListingNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrAccountExists):
		writeJSON(w, http.StatusConflict, models.NewErrorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(fallback))
	}
}

// isInternal reports whether err falls through to the 500 branch of
// writeServiceError; handlers log only those.
func isInternal(err error) bool {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return false
	}
	switch {
	case errors.Is(err, services.ErrListingNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrAccountExists):
		return false
	}
	return true
}

// queryInt parses an integer query parameter, returning def when absent or
// malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryBool parses a boolean query parameter, returning def when absent or
// malformed.
func queryBool(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}
